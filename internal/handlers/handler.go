package handlers

import (
	"time"

	"smart_climate/internal/logger"
	"smart_climate/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
}

// Option tunes a Handler.
type Option func(*Handler)

// WithStreamInterval sets the entry stream period used when /ws gets no
// interval query. Values outside (0, maxInterval] are ignored.
func WithStreamInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.streamInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, streamInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Entry list stream (HTTP upgrade) on the same port
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
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/schema", h.getSchema)
		h.registerFlowRoutes(api)
		h.registerOptionsRoutes(api)
		h.registerEntryRoutes(api)
		h.registerEntityRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerFlowRoutes(api *gin.RouterGroup) {
	flows := api.Group("/flows")
	{
		// Body example: {"handler":"smart_climate"}
		flows.POST("", h.startFlow)
		flows.POST("/import", h.importRecord)
		flows.GET("/:flow_id", h.progressFlow)
		flows.POST("/:flow_id", h.submitFlow)
		flows.DELETE("/:flow_id", h.abortFlow)
	}
}

func (h *Handler) registerOptionsRoutes(api *gin.RouterGroup) {
	options := api.Group("/options")
	{
		options.GET("/:flow_id", h.progressOptions)
		options.POST("/:flow_id", h.submitOptions)
		options.DELETE("/:flow_id", h.abortOptions)
	}
}

func (h *Handler) registerEntryRoutes(api *gin.RouterGroup) {
	entries := api.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.DELETE("/:entry_id", h.removeEntry)
		entries.POST("/:entry_id/options", h.startOptions)
	}
}

func (h *Handler) registerEntityRoutes(api *gin.RouterGroup) {
	entities := api.Group("/entities")
	{
		entities.GET("", h.listEntities)
		entities.PUT("", h.upsertEntities)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}
