package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *ContactHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.POST("/contact", h.Submit)
	g.GET("/admin/contact-messages", authMiddleware, adminMiddleware, h.List)
}
