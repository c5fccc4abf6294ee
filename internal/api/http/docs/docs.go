// Package docs serves the OpenAPI description of the projects API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "%s", dom_id: "#swagger-ui" });
  </script>
</body>
</html>
`

// Handler serves the document in YAML and JSON plus a Swagger UI page.
type Handler struct {
	title    string
	yamlDoc  []byte
	jsonDoc  []byte
	basePath string
}

// New decodes the embedded document and points its server entry at serverURL.
func New(serverURL string) (*Handler, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openapiYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode openapi: %w", err)
	}

	if serverURL != "" {
		doc["servers"] = []interface{}{
			map[string]interface{}{"url": serverURL},
		}
	}

	title := "API docs"
	if info, ok := doc["info"].(map[string]interface{}); ok {
		if t, ok := info["title"].(string); ok {
			title = t
		}
	}

	y, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi yaml: %w", err)
	}
	j, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode openapi json: %w", err)
	}

	return &Handler{title: title, yamlDoc: y, jsonDoc: j}, nil
}

// Register mounts the docs under rg, e.g. /api/api-docs.
func (h *Handler) Register(rg *gin.RouterGroup) {
	h.basePath = rg.BasePath()
	rg.GET("", h.page)
	rg.GET("/openapi.yaml", h.serveYAML)
	rg.GET("/openapi.json", h.serveJSON)
}

func (h *Handler) page(c *gin.Context) {
	html := fmt.Sprintf(swaggerPage, h.title, h.basePath+"/openapi.json")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) serveYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", h.yamlDoc)
}

func (h *Handler) serveJSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.jsonDoc)
}
