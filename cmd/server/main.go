package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/labrinth/backend/config"
	"github.com/labrinth/backend/internal/auth"
	"github.com/labrinth/backend/internal/cache"
	"github.com/labrinth/backend/internal/handlers"
	"github.com/labrinth/backend/internal/middleware"
	"github.com/labrinth/backend/internal/moderation"
	"github.com/labrinth/backend/internal/repository"
	"github.com/labrinth/backend/internal/store"
	"github.com/labrinth/backend/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the flat-file store
	st, err := store.Open(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}

	// Connect to Redis (optional: the event feed degrades gracefully)
	redis, err := cache.NewRedisClient(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Println("Running without Redis - the live event feed is disabled")
		redis = nil
	} else {
		defer redis.Close()
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(st)
	categoryRepo := repository.NewCategoryRepository(st)
	postRepo := repository.NewPostRepository(st)
	replyRepo := repository.NewReplyRepository(st)

	modService := moderation.NewService(userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, jwtService)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, postRepo)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, redis)
	replyHandler := handlers.NewReplyHandler(replyRepo, postRepo, userRepo, redis)
	moderationHandler := handlers.NewModerationHandler(modService)
	userHandler := handlers.NewUserHandler(userRepo, postRepo, replyRepo)

	// Initialize WebSocket hub (only if Redis is available)
	var hub *websocket.Hub
	var wsHandler *websocket.Handler
	if redis != nil {
		hub = websocket.NewHub(redis)
		go hub.Run()
		wsHandler = websocket.NewHandler(hub, jwtService, cfg.CORS.AllowedOrigins)
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(cfg.API.RateLimitActionsPerSec)
	rateLimiter.Cleanup()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/update-password", authHandler.UpdatePassword)
		authRoutes.POST("/delete-account", authHandler.DeleteAccount)
	}

	// WebSocket endpoint (only if Redis is available)
	if wsHandler != nil {
		router.GET("/ws", wsHandler.HandleWebSocket)
	}

	api := router.Group("/api/v1")
	{
		// Session routes
		api.GET("/me", middleware.AuthMiddleware(jwtService), authHandler.GetMe)
		if wsHandler != nil {
			api.GET("/online-users", middleware.AuthMiddleware(jwtService), wsHandler.GetOnlineUsers)
		}

		// Category routes
		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategory)
		api.GET("/categories/:slug/posts", categoryHandler.ListCategoryPosts)

		// Post routes
		api.GET("/posts/moderated", postHandler.ListModeratedPosts)
		api.POST("/posts/moderated", middleware.RateLimitMiddleware(rateLimiter), postHandler.CreateModeratedPost)
		api.POST("/posts", middleware.RateLimitMiddleware(rateLimiter), postHandler.CreatePost)
		api.GET("/posts/:id", postHandler.GetPost)
		api.DELETE("/posts/:id", postHandler.DeletePost)

		// Reply routes
		api.POST("/replies", middleware.RateLimitMiddleware(rateLimiter), replyHandler.CreateReply)
		api.GET("/replies/:id", replyHandler.GetReply)
		api.DELETE("/replies/:id", replyHandler.DeleteReply)

		// Moderation routes
		api.POST("/users/ban", moderationHandler.BanUser)
		api.POST("/users/unban", moderationHandler.UnbanUser)
		api.POST("/users/mute", moderationHandler.MuteUser)
		api.POST("/users/unmute", moderationHandler.UnmuteUser)

		// User routes
		api.GET("/users/:id/activity", userHandler.GetActivity)
		api.GET("/admin/users", userHandler.ListUsers)
	}

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Starting Labrinth forum server on %s (env: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
