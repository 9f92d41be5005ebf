// Package router wires handlers, services and middleware into the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pocketledger/internal/docs" // Import swagger docs
	"pocketledger/internal/handlers"
	"pocketledger/internal/localstore"
	"pocketledger/internal/middleware"
	"pocketledger/internal/services"
)

// New builds the API router over store.
func New(store *localstore.Store) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(store)
	profileService := services.NewProfileService(store)
	categoryService := services.NewCategoryService(store)
	transactionService := services.NewTransactionService(store)
	exportService := services.NewExportService(store)
	auditService := services.NewAuditService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	downloadHandler := handlers.NewDownloadHandler(exportService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": store.Available()})
	})

	v1 := router.Group("/api/v1")

	// Public session routes
	session := v1.Group("/auth/session")
	session.POST("", authHandler.StartSession)
	session.GET("", authHandler.GetSession)
	session.DELETE("", authHandler.EndSession)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	pinGuard := middleware.PINGuard(authService)

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.SaveProfile)
	protected.PATCH("/profile", profileHandler.UpdateProfile)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:name", categoryHandler.DeleteCategory)

	pin := protected.Group("/pin")
	pin.PUT("", pinGuard, authHandler.SetPIN)
	pin.DELETE("", pinGuard, authHandler.RemovePIN)
	pin.POST("/verify", authHandler.VerifyPIN)

	protected.GET("/onboarding", authHandler.GetOnboarding)
	protected.POST("/onboarding", authHandler.CompleteOnboarding)

	downloads := protected.Group("/downloads")
	downloads.GET("", downloadHandler.GetDownloads)
	downloads.POST("", downloadHandler.CreateDownload)
	downloads.DELETE("", downloadHandler.ClearDownloads)
	downloads.GET("/:id", downloadHandler.GetDownload)
	downloads.GET("/:id/file", downloadHandler.GetDownloadFile)
	downloads.DELETE("/:id", downloadHandler.DeleteDownload)

	protected.DELETE("/account/data", pinGuard, authHandler.DeleteAccountData)

	return router
}

// cors allows a browser UI served from another origin to call the API.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-PIN")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
