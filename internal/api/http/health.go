package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by storage backends that talk to a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Version       string    `json:"version"`
	Storage       string    `json:"storage"`
	StorageStatus string    `json:"storage_status"`
}

type HealthHandler struct {
	serviceName string
	version     string
	storage     string
	pinger      Pinger
}

// NewHealthHandler creates the health endpoints. pinger may be nil for
// local storage.
func NewHealthHandler(serviceName, version, storage string, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		storage:     storage,
		pinger:      pinger,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageStatus := "local"
	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.pinger.Ping(pingCtx); err != nil {
			storageStatus = "down"
		} else {
			storageStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Service:       h.serviceName,
		Version:       h.version,
		Storage:       h.storage,
		StorageStatus: storageStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
