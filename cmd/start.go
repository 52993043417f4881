/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/thinknotes-be/config"
	"github.com/tieubaoca/thinknotes-be/database"
	"github.com/tieubaoca/thinknotes-be/handler"
	"github.com/tieubaoca/thinknotes-be/middleware"
	"github.com/tieubaoca/thinknotes-be/repository"
	"github.com/tieubaoca/thinknotes-be/service"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the study material server",
	Long:  `Starts a server that turns uploaded documents into summaries and flashcards`,
	Run: func(cmd *cobra.Command, args []string) {

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		extractService := service.NewExtractService()

		var aiService service.AIService
		switch cfg.AIProvider {
		case "openai":
			aiService = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
		default:
			geminiService, err := service.NewGeminiService(strings.Split(cfg.GeminiAPIKey, ","), cfg.Model)
			if err != nil {
				log.Fatalf("Failed to create Gemini service: %v", err)
			}
			defer geminiService.Close()
			aiService = geminiService
		}

		contentService := service.NewContentService(aiService)
		builderService := service.NewPDFBuilderService()
		studyService := service.NewStudyService(extractService, contentService, builderService)
		wsService := service.NewWebSocketService(studyService)

		mongoClient := database.DefaultMongoClient
		if err := mongoClient.Ping(context.Background(), nil); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDB)

		//init repo
		userRepo := repository.NewUserRepo(mongoDb.Collection("users"))
		//init service
		userService := service.NewUserService(userRepo)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(studyService)
		authHandler := handler.NewAuthHandler(userService)
		userMngHandler := handler.NewUserManageHandler(userService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ThinkNotes.AI backend is running"})
		})

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/upload", uploadHandler.HandleUpload)
		apiV1.GET("/upload/ws", func(c *gin.Context) {
			wsService.HandleUpload(c.Writer, c.Request)
		})
		apiV1.POST("/auth/register", authHandler.HandleRegister)
		apiV1.POST("/auth/login", authHandler.HandleLogin)

		// Protected user routes
		userRoutes := apiV1.Group("/")
		userRoutes.Use(middleware.AuthMiddleware)
		{
			userRoutes.GET("/me", authHandler.HandleMe)
		}

		// Admin routes - require admin authentication
		adminRoutes := router.Group("/admin/api/v1")
		adminRoutes.Use(middleware.AdminAuthMiddleware)
		{
			adminRoutes.POST("/users/create", userMngHandler.HandleCreateUser)
			adminRoutes.GET("/users/paginate", userMngHandler.HandlePaginateUser)
			adminRoutes.GET("/users/get", userMngHandler.HandleGetUser)
			adminRoutes.PUT("/users/update", userMngHandler.HandleUpdateUser)
			adminRoutes.DELETE("/users/delete", userMngHandler.HandleDeleteUser)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
