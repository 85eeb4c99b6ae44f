package server

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/config"
	"github.com/Aryankr26/fleet-backend-1.0/internal/handler"
	"github.com/Aryankr26/fleet-backend-1.0/internal/middleware"
	"github.com/Aryankr26/fleet-backend-1.0/internal/service"
	"github.com/Aryankr26/fleet-backend-1.0/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	router    *gin.Engine
	config    *config.Config
	db        *gorm.DB
	redis     *redis.Client
	nats      *nats.Conn
	wsHub     *handler.WSHub
	wsHandler *handler.WSHandler
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, natsConn *nats.Conn) *Server {
	return &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
		nats:   natsConn,
	}
}

// Setup initializes routes and handlers
func (s *Server) Setup() {
	// Initialize WebSocket hub first
	s.wsHub = handler.NewWSHub(s.nats)
	s.wsHandler = handler.NewWSHandler(s.wsHub)

	// Initialize services
	gormStore := store.NewGormStore(s.db)
	shadowCache := store.NewShadowCache(s.redis)
	authService := service.NewAuthService(s.db)
	dashboardService := service.NewDashboardService(gormStore)
	insightsService := service.NewInsightsService(gormStore)
	telemetryService := service.NewTelemetryService(s.db, shadowCache, s.nats)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, s.config)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, insightsService)
	vehicleHandler := handler.NewVehicleHandler(s.db)
	telemetryHandler := handler.NewTelemetryHandler(telemetryService)
	complaintHandler := handler.NewComplaintHandler(s.db)
	geofenceHandler := handler.NewGeofenceHandler(s.db)
	fuelHandler := handler.NewFuelHandler(s.db)

	// Start WebSocket hub in background
	go s.wsHub.Run()
	log.Println("[Server] WebSocket hub started")

	// Setup Gin router
	s.router = gin.Default()

	// CORS middleware
	s.router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Rate limiting (Redis fixed window, per IP)
	rateLimiter := middleware.NewRateLimiter(s.redis, s.config)
	s.router.Use(rateLimiter.Middleware())

	// Swagger UI
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	s.router.GET("/health", func(c *gin.Context) {
		health := gin.H{"status": "ok"}
		if s.nats != nil && s.nats.IsConnected() {
			health["nats"] = "connected"
		} else {
			health["nats"] = "disconnected"
		}
		c.JSON(200, health)
	})
	s.router.POST("/api/auth/signup", authHandler.Signup)
	s.router.POST("/api/auth/login", authHandler.Login)

	// WebSocket routes - public but can add auth middleware if needed
	s.router.GET("/ws/telemetry", s.wsHandler.HandleTelemetry)
	s.router.GET("/ws/stats", s.wsHandler.GetStats)

	// Protected routes
	api := s.router.Group("/api")
	api.Use(authHandler.AuthMiddleware())
	{
		api.GET("/auth/me", authHandler.GetMe)

		dashboardHandler.RegisterRoutes(api)
		vehicleHandler.RegisterRoutes(api)
		telemetryHandler.RegisterRoutes(api)
		complaintHandler.RegisterRoutes(api)
		geofenceHandler.RegisterRoutes(api)
		fuelHandler.RegisterRoutes(api)
	}
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	log.Printf("[Server] HTTP server listening on %s", addr)
	return s.router.Run(addr)
}

// GetRouter returns the gin router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() {
	if s.wsHub != nil {
		s.wsHub.Stop()
		log.Println("[Server] WebSocket hub stopped")
	}
}
