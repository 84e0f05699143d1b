package routes

import (
	"log"

	"github.com/Shwetank-F/daily-diet-scan/config"
	"github.com/Shwetank-F/daily-diet-scan/controllers"
	"github.com/Shwetank-F/daily-diet-scan/middlewares"
	"github.com/Shwetank-F/daily-diet-scan/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()
	catalog := services.NewCatalogService(config.DB)
	ledger := services.NewLedgerService(config.DB, catalog, hub)
	goals := services.NewGoalService(config.DB, ledger)

	recognizer, err := services.NewTextRecognizer()
	if err != nil {
		log.Fatalf("Failed to initialize OCR provider: %v", err)
	}
	scan := services.NewScanService(recognizer)

	entryCtl := controllers.NewEntryController(ledger)
	scanCtl := controllers.NewScanController(scan)
	catalogCtl := controllers.NewCatalogController(catalog)
	goalCtl := controllers.NewGoalController(goals)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/scan", scanCtl.ScanLabel)

		api.POST("/entries", entryCtl.Record)
		api.DELETE("/entries/:id", entryCtl.Delete)
		api.POST("/entries/:id/retry-totals", entryCtl.RetryTotals)

		api.GET("/day", entryCtl.GetDay)
		api.GET("/day/history", entryCtl.History)

		api.GET("/catalog", catalogCtl.Search)

		api.GET("/goals", goalCtl.GetGoals)
		api.PUT("/goals", goalCtl.UpdateGoals)

		api.GET("/ws", rtCtl.TotalsWS)
	}

	return r
}
