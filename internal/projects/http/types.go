package http

import (
	"go.uber.org/zap"

	"github.com/is24/projects-manager/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc    *service.ProjectService
	logger *zap.Logger
}

func New(svc *service.ProjectService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// messageResponse is the body of every error reply.
type messageResponse struct {
	Message string `json:"message"`
}

const msgRequiredFields = "All required fields must be defined."
