package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupDocs(t *testing.T, serverURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h, err := New(serverURL)
	require.NoError(t, err)

	r := gin.New()
	h.Register(r.Group("/api/api-docs"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDocs_JSON(t *testing.T) {
	r := setupDocs(t, "http://localhost:3000")

	w := get(r, "/api/api-docs/openapi.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string                 `json:"openapi"`
		Servers []map[string]string    `json:"servers"`
		Paths   map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.NotEmpty(t, doc.OpenAPI)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://localhost:3000", doc.Servers[0]["url"])
	assert.Contains(t, doc.Paths, "/api/projects")
	assert.Contains(t, doc.Paths, "/api/projects/{productId}")
}

func TestDocs_YAML(t *testing.T) {
	r := setupDocs(t, "")

	w := get(r, "/api/api-docs/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc, "paths")
}

func TestDocs_Page(t *testing.T) {
	r := setupDocs(t, "")

	w := get(r, "/api/api-docs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `url: "/api/api-docs/openapi.json"`)
}
