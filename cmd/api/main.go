package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/archfolio/backend/internal/config"
	"github.com/archfolio/backend/internal/handlers"
	"github.com/archfolio/backend/internal/middleware"
	"github.com/archfolio/backend/internal/models"
	"github.com/archfolio/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	storageService := services.NewStorageService(cfg)
	imageService := services.NewImageService(db, cfg, storageService)
	imageTagService := services.NewImageTagService(db)
	tagService := services.NewTagService(db, imageTagService)
	projectService := services.NewProjectService(db, storageService)
	newsService := services.NewNewsService(db)
	siteService := services.NewSiteService(db)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageService)
	imageTagHandler := handlers.NewImageTagHandler(imageTagService)
	tagHandler := handlers.NewTagHandler(tagService)
	projectHandler := handlers.NewProjectHandler(projectService)
	newsHandler := handlers.NewNewsHandler(newsService)
	siteHandler := handlers.NewSiteHandler(siteService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Catch-all OPTIONS handler for CORS preflight requests
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Uploaded files are served straight from disk
	router.Static(strings.TrimRight(cfg.UploadURLPrefix, "/"), cfg.UploadPath)

	// Image routes
	images := router.Group("/images")
	{
		images.GET("", imageHandler.GetAllImages)
		images.PUT("/:id", imageHandler.UpdateImage)
		images.DELETE("/:id", imageHandler.DeleteImage)
		images.DELETE("/:id/explicit", imageHandler.DeleteImageExplicit)

		// Upload routes with rate limiting
		uploadGroup := images.Group("")
		uploadGroup.Use(middleware.UploadRateLimit(redisClient, cfg))
		{
			uploadGroup.POST("/upload", imageHandler.UploadImage)
			uploadGroup.POST("/upload/multiple", imageHandler.UploadImages)
		}
	}

	// Project routes
	projects := router.Group("/projects")
	{
		projects.GET("", projectHandler.GetAllProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.POST("", projectHandler.CreateProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.PUT("/:id/images", projectHandler.SetImages)
		projects.POST("/:id/images", projectHandler.AddImages)
		projects.DELETE("/:id/images", projectHandler.RemoveImages)
	}

	api := router.Group("/api")
	{
		// Tag routes
		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetAllTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		// Image-tag link routes
		imageTags := api.Group("/image-tags")
		{
			imageTags.GET("", imageTagHandler.GetAll)
			imageTags.POST("/link", imageTagHandler.Link)
			imageTags.DELETE("/unlink", imageTagHandler.Unlink)
			imageTags.GET("/image/:imageId/tags", imageTagHandler.GetTagsByImage)
			imageTags.GET("/tag/:tagId/images", imageTagHandler.GetImagesByTag)
			imageTags.DELETE("/image/:imageId/tags", imageTagHandler.RemoveAllForImage)
			imageTags.DELETE("/tag/:tagId/images", imageTagHandler.RemoveAllForTag)
		}

		// News routes
		news := api.Group("/news")
		{
			news.GET("", newsHandler.GetNews)
			news.GET("/all", newsHandler.GetAllNews)
			news.GET("/:id", newsHandler.GetNewsByID)
			news.POST("", newsHandler.CreateNews)
			news.PUT("/:id", newsHandler.UpdateNews)
			news.DELETE("/:id", newsHandler.DeleteNews)
		}
	}

	// Legacy page-content routes
	works := router.Group("/works")
	{
		works.GET("", siteHandler.GetAllWorks)
		works.GET("/:id", siteHandler.GetWork)
		works.POST("", siteHandler.CreateWork)
		works.PUT("/:id", siteHandler.UpdateWork)
		works.DELETE("/:id", siteHandler.DeleteWork)
	}

	authors := router.Group("/authors")
	{
		authors.GET("", siteHandler.GetAllAuthors)
		authors.POST("", siteHandler.CreateAuthor)
		authors.DELETE("/:id", siteHandler.DeleteAuthor)
	}

	members := router.Group("/members")
	{
		members.GET("", siteHandler.GetAllMembers)
		members.POST("", siteHandler.CreateMember)
		members.DELETE("/:id", siteHandler.DeleteMember)
	}

	router.GET("/about", siteHandler.GetAbout)
	router.PUT("/about", siteHandler.UpdateAbout)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second, // uploads can be slow on bad links
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
