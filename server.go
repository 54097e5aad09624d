package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/furniture-portal-api/controllers"
	"github.com/kendall-kelly/furniture-portal-api/middleware"
	"github.com/kendall-kelly/furniture-portal-api/services"
	"go.uber.org/zap"
)

// application holds everything the router needs
type application struct {
	portal  *services.Portal
	auth    *services.AuthService
	uploads services.UploadService
	// uploadDir is served at /api/v1/uploads when files are stored locally
	uploadDir   string
	tokens      middleware.TokenSettings
	corsOrigins []string
	logger      *zap.Logger
}

// setupRouter registers every route of the portal API
func setupRouter(app *application) (*gin.Engine, error) {
	logger := app.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	authenticate, err := middleware.EnsureValidToken(app.tokens, app.auth, logger)
	if err != nil {
		return nil, err
	}

	origins := app.corsOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authController := controllers.NewAuthController(app.auth)
	clientController := controllers.NewClientController(app.portal)
	furnitureController := controllers.NewFurnitureController(app.portal)
	deadlineController := controllers.NewDeadlineController(app.portal)
	assistanceController := controllers.NewAssistanceController(app.portal)
	messageController := controllers.NewMessageController(app.portal)
	purchasedItemController := controllers.NewPurchasedItemController(app.portal)
	contractController := controllers.NewContractController(app.portal)
	dashboardController := controllers.NewDashboardController(app.portal)
	adminController := controllers.NewAdminController(app.portal)
	reportController := controllers.NewReportController(app.portal)
	uploadController := controllers.NewUploadController(app.uploads)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/storage/status", storageStatus(app.portal))
		if app.uploadDir != "" {
			v1.GET("/uploads/:filename", controllers.GetUploadedFile(app.uploadDir))
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/admin/login", authController.AdminLogin)
			auth.POST("/logout", authenticate, authController.Logout)
			auth.GET("/me", authenticate, authController.Me)
		}

		me := v1.Group("/me", authenticate, middleware.RequireRole(string(services.RoleClient)), middleware.RequireAccount(app.auth))
		{
			me.GET("/furniture", furnitureController.ListMine)
			me.GET("/furniture/:id", furnitureController.GetMine)
			me.GET("/deadlines", deadlineController.ListMine)
			me.GET("/assistance", assistanceController.ListMine)
			me.POST("/assistance", assistanceController.CreateMine)
			me.GET("/messages", messageController.ListMine)
			me.POST("/messages", messageController.SendMine)
			me.POST("/messages/read", messageController.MarkMineRead)
			me.GET("/purchased-items", purchasedItemController.ListMine)
			me.GET("/contract", contractController.GetMine)
			me.POST("/uploads", uploadController.Upload)
		}

		admin := v1.Group("/admin", authenticate, middleware.RequireRole(string(services.RoleAdmin)), middleware.RequireAccount(app.auth))
		{
			admin.GET("/dashboard", dashboardController.Summary)

			admin.GET("/clients", clientController.List)
			admin.POST("/clients", clientController.Create)
			admin.GET("/clients/:id", clientController.Get)
			admin.PUT("/clients/:id", clientController.Update)
			admin.DELETE("/clients/:id", clientController.Delete)

			admin.GET("/clients/:id/furniture", furnitureController.ListForClient)
			admin.POST("/clients/:id/furniture", furnitureController.Create)
			admin.GET("/clients/:id/deadlines", deadlineController.ListForClient)
			admin.POST("/clients/:id/deadlines", deadlineController.Create)
			admin.GET("/clients/:id/assistance", assistanceController.ListForClient)
			admin.GET("/clients/:id/messages", messageController.ListForClient)
			admin.POST("/clients/:id/messages", messageController.SendToClient)
			admin.GET("/clients/:id/purchased-items", purchasedItemController.ListForClient)
			admin.POST("/clients/:id/purchased-items", purchasedItemController.Create)
			admin.GET("/clients/:id/contract", contractController.GetForClient)
			admin.PUT("/clients/:id/contract", contractController.UpdateForClient)
			admin.GET("/clients/:id/export", reportController.Export)

			admin.GET("/furniture", furnitureController.ListAll)
			admin.GET("/furniture/:itemId", furnitureController.Get)
			admin.PUT("/furniture/:itemId", furnitureController.Update)
			admin.DELETE("/furniture/:itemId", furnitureController.Delete)

			admin.PUT("/deadlines/:itemId", deadlineController.Update)
			admin.DELETE("/deadlines/:itemId", deadlineController.Delete)

			admin.GET("/assistance", assistanceController.ListAll)
			admin.PUT("/assistance/:itemId", assistanceController.Update)

			admin.PUT("/purchased-items/:itemId", purchasedItemController.Update)
			admin.DELETE("/purchased-items/:itemId", purchasedItemController.Delete)

			admin.GET("/admins", adminController.List)
			admin.POST("/admins", adminController.Create)
			admin.PUT("/me/password", adminController.ChangeMyPassword)

			admin.POST("/uploads", uploadController.Upload)
			admin.DELETE("/uploads/*key", uploadController.Delete)
		}
	}

	return router, nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Furniture Portal API is running",
	})
}

// storageStatus reports the storage backend and whether it can be read
func storageStatus(p *services.Portal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_UNAVAILABLE",
					"message": "Storage backend is unreachable",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Storage connected",
			"backend": p.BackendName(),
		})
	}
}
