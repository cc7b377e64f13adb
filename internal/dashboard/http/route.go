package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, identityMiddleware gin.HandlerFunc) {
	g.GET("/admin/dashboard", authMiddleware, identityMiddleware, h.Get)
}
