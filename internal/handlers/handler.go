package handlers

import (
	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", h.metrics)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// live dashboard; the token travels in the query since browsers cannot set headers on upgrade
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/dashboard", h.getDashboard)

		api.GET("/profile", h.getProfile)
		api.PUT("/profile", h.updateProfile)

		// Body example: {"efficiency":"35","system_health":"Critical"}
		api.GET("/developer", h.getDeveloper)
		api.POST("/developer", h.setDeveloper)

		api.POST("/sign-out", h.signOut)

		api.GET("/about", h.about)
		api.GET("/contact", h.contact)

		api.GET("/logs", h.getLogs)
	}
}
