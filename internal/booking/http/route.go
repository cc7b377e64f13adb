package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the ledger. identityMiddleware must run after authMiddleware.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, identityMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/courses/:id/seats", h.SeatsLeft)

	// === Authenticated Routes ===
	group := g.Group("/bookings", authMiddleware, identityMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/form", h.Form)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	// The service checks the admin flag and answers 403 itself.
	admin := g.Group("/admin/bookings", authMiddleware, identityMiddleware)
	{
		admin.GET("", h.AdminList)
		admin.PATCH("/:id/status", h.AdminSetStatus)
	}
}
