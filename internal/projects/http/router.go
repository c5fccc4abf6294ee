package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. writes
// wraps the mutating routes, e.g. with a rate limiter.
func (h *Handler) Register(rg *gin.RouterGroup, writes ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.GET("/:productId", h.get)
	rg.POST("", chain(writes, h.create)...)
	rg.PUT("/:productId", chain(writes, h.update)...)
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}
