package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/is24/projects-manager/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List(c.Request.Context()))
}

func (h *Handler) get(c *gin.Context) {
	productID := c.Param("productId")

	p, err := h.svc.Get(c.Request.Context(), productID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid create body", zap.Error(err))
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgRequiredFields})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	productID := c.Param("productId")

	var req domain.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid update body", zap.String("product_id", productID), zap.Error(err))
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgRequiredFields})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var nf *domain.NotFoundError
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgRequiredFields})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, messageResponse{Message: nf.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, messageResponse{Message: "project not found"})
	default:
		h.logger.Error("project request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, messageResponse{Message: "internal server error"})
	}
}
