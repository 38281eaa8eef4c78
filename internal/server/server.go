package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/Khushi2755/academix/internal/handler"
	"github.com/Khushi2755/academix/internal/middleware"
	"github.com/Khushi2755/academix/internal/model"
	"github.com/Khushi2755/academix/internal/repository"
	"github.com/Khushi2755/academix/internal/service"
	"github.com/Khushi2755/academix/pkg/mailer"
	"github.com/Khushi2755/academix/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	// Avatar storage is optional; registration works without it.
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage disabled: %v", err)
		imageStorage = nil
	}

	// Club search is optional; the search endpoint reports when disabled.
	var searchSvc service.SearchService
	if meiliHost := os.Getenv("MEILISEARCH_HOST"); meiliHost != "" {
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
		searchSvc = service.NewSearchService(meiliClient)
	}

	authSvc := service.NewAuthService(userRepo, imageStorage, mailer.New())
	authHandler := handler.NewAuthHandler(authSvc)

	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	clubSvc := service.NewClubService(clubRepo, userRepo, notificationSvc, searchSvc, redisClient)
	clubHandler := handler.NewClubHandler(clubSvc)

	courseSvc := service.NewCourseService(courseRepo)
	courseHandler := handler.NewCourseHandler(courseSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Club routes
		protected.GET("/clubs", clubHandler.List)
		protected.GET("/clubs/search", clubHandler.Search)
		protected.GET("/clubs/:id", clubHandler.Get)
		protected.POST("/clubs", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.Create)
		protected.PUT("/clubs/:id", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.Update)
		protected.DELETE("/clubs/:id", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.Delete)
		protected.POST("/clubs/:id/members", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.AddMember)
		protected.DELETE("/clubs/:id/members/:memberId", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.RemoveMember)
		protected.POST("/clubs/:id/events", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.AddEvent)
		protected.DELETE("/clubs/:id/events/:idx", authMiddleware.RequireRoles(model.RoleCoordinator), clubHandler.DeleteEvent)
		protected.POST("/clubs/:id/enroll", authMiddleware.RequireRoles(model.RoleStudent), clubHandler.Enroll)

		// Course routes
		protected.GET("/courses", courseHandler.List)
		protected.GET("/courses/:id", courseHandler.Get)
		protected.POST("/courses", authMiddleware.RequireRoles(model.RoleTeacher), courseHandler.Create)
		protected.POST("/courses/:id/enroll", authMiddleware.RequireRoles(model.RoleStudent), courseHandler.Enroll)

		// Notification routes
		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
