package handlers

import "github.com/gin-gonic/gin"

// NewRouter sets up the Gin router: public routes at the root, administration
// routes under /admin behind AdminMiddleware.
func NewRouter(h *HTTPHandler) *gin.Engine {
	r := gin.Default()

	h.RegisterPublicRoutes(r)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(h.AdminMiddleware())
	h.RegisterAdminRoutes(adminRoutes)

	return r
}
