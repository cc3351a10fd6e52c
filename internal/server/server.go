package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xmuphysics/forum-backend/internal/database"
	"github.com/xmuphysics/forum-backend/internal/handlers"
	"github.com/xmuphysics/forum-backend/internal/metrics"
	"github.com/xmuphysics/forum-backend/internal/middleware"
	"github.com/xmuphysics/forum-backend/internal/notify"
	"github.com/xmuphysics/forum-backend/internal/otp"
	"github.com/xmuphysics/forum-backend/internal/storage"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	db := database.New()

	handler := handlers.NewHandler(db.GetDB(), newDispatcher(), newFileStore(), newPublisher())

	newServer := &Server{
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s", port)

	return server
}

// newDispatcher prefers Twilio Verify when a service SID is configured and
// falls back to the local redis code store otherwise.
func newDispatcher() otp.Dispatcher {
	if os.Getenv("TWILIO_VERIFY_SERVICE_SID") != "" {
		return otp.NewTwilioVerify()
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	log.Println("⚠️  Twilio Verify not configured, using local redis passcodes")
	return otp.NewRedisCodes(addr)
}

func newFileStore() *storage.Store {
	cfg := storage.ConfigFromEnv()
	if cfg.Endpoint == "" {
		log.Println("⚠️  MINIO_ENDPOINT not set, resource uploads disabled")
		return nil
	}
	files, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	return files
}

func newPublisher() notify.Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️  KAFKA_BROKERS not set, comment notifications are logged only")
		return notify.NopPublisher{}
	}
	return notify.NewWriter(brokers, notify.TopicCommentCreated)
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(metrics.Middleware())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/login", s.handler.Auth.Login)
		api.POST("/auth/verify", s.handler.Auth.Verify)

		// Public reads; OptionalAuth so responses can carry the viewer's vote
		public := api.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/categories", s.handler.Category.GetCategories)
			public.GET("/categories/:slug/posts", s.handler.Post.GetCategoryPosts)
			public.GET("/posts/:id", s.handler.Post.GetPost)
			public.GET("/posts/:id/comments", s.handler.Comment.GetComments)
			public.GET("/users/:id", s.handler.Profile.GetProfile)
			public.GET("/resources", s.handler.Resource.GetResources)
			public.GET("/news", s.handler.News.GetNews)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.POST("/posts/:id/vote", s.handler.Post.VotePost)
			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.PUT("/posts/:id/follow", s.handler.Follow.ToggleFollow)

			protected.POST("/resources", s.handler.Resource.UploadResource)
			protected.PUT("/profile", s.handler.Profile.UpdateProfile)
			protected.POST("/news", s.handler.News.CreateNews)
		}
	}

	return r
}
