package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/is24/projects-manager/internal/api/http/docs"
	projectshttp "github.com/is24/projects-manager/internal/projects/http"
	"github.com/is24/projects-manager/internal/projects/service"
)

type APIDeps struct {
	Projects      *service.ProjectService
	Logger        *zap.Logger
	WriteLimit    gin.HandlerFunc // optional, guards POST/PUT
	DocsServerURL string
}

// RegisterAPI mounts everything under /api.
func RegisterAPI(r *gin.Engine, dep APIDeps) error {
	api := r.Group("/api")

	var writes []gin.HandlerFunc
	if dep.WriteLimit != nil {
		writes = append(writes, dep.WriteLimit)
	}

	projectsHandler := projectshttp.New(dep.Projects, dep.Logger)
	projectsHandler.Register(api.Group("/projects"), writes...)

	docsHandler, err := docs.New(dep.DocsServerURL)
	if err != nil {
		return err
	}
	docsHandler.Register(api.Group("/api-docs"))

	return nil
}
