package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/config"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/handlers"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/middleware"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/websocket"
)

func SetupRouter(db *gorm.DB, config *config.Config) *gin.Engine {
	router := gin.Default()

	lifecycle := utils.NewLifecycleService(db)

	authHandler := handlers.NewAuthHandler(db)
	militaryHandler := handlers.NewMilitaryHandler(db, lifecycle)
	requestHandler := handlers.NewRequestHandler(db, lifecycle)
	rosterHandler := handlers.NewRosterHandler(lifecycle)
	checkpointHandler := handlers.NewCheckpointHandler(db)
	reportHandler := handlers.NewReportHandler(db)
	simulationHandler := handlers.NewSimulationHandler(db, lifecycle)

	var wsHandler *websocket.WebSocketHandler
	if config.EnableWebsocket {
		wsHandler = websocket.NewWebSocketHandler(db)

		lifecycle.SetWebSocketHandler(wsHandler)
	}

	authMiddleware := middleware.NewAuthMiddleware(db)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(config)

	router.Use(func(c *gin.Context) {
		c.Set("config", config)
		c.Next()
	})

	if config.EnableWebsocket {
		router.GET("/ws", wsHandler.HandleWebSocket)
	}

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authMiddleware.AuthRequired(), authMiddleware.AdminRequired(), authHandler.Register)
		auth.GET("/me", authMiddleware.AuthRequired(), authHandler.GetMe)
	}

	api := router.Group("/api")

	if config.APIKeyRequired {
		api.Use(apiKeyMiddleware.APIKeyRequired())
	}

	api.Use(authMiddleware.AuthRequired())
	{
		militaries := api.Group("/militaries")
		{
			militaries.GET("", militaryHandler.GetMilitaries)
			militaries.GET("/:id", militaryHandler.GetMilitary)
			militaries.POST("", militaryHandler.CreateMilitary)
			militaries.PUT("/:id", militaryHandler.UpdateMilitary)
			militaries.DELETE("/:id", militaryHandler.DeleteMilitary)
			militaries.POST("/:id/credential", militaryHandler.IssueCredential)
			militaries.GET("/:id/credential", militaryHandler.GetCredential)
			militaries.GET("/qr/:code", militaryHandler.GetByQRCode)
		}

		requests := api.Group("/requests")
		{
			requests.GET("", requestHandler.GetRequests)
			requests.GET("/:id", requestHandler.GetRequest)
			requests.POST("", requestHandler.SubmitRequest)
			requests.POST("/:id/decide", requestHandler.DecideRequest)
		}

		api.GET("/roster", rosterHandler.GetRoster)

		checkpoints := api.Group("/checkpoints")
		{
			checkpoints.GET("", checkpointHandler.GetCheckpoints)
			checkpoints.GET("/:id", checkpointHandler.GetCheckpoint)
			checkpoints.POST("", authMiddleware.AdminRequired(), checkpointHandler.CreateCheckpoint)
			checkpoints.PUT("/:id", authMiddleware.AdminRequired(), checkpointHandler.UpdateCheckpoint)
			checkpoints.DELETE("/:id", authMiddleware.AdminRequired(), checkpointHandler.DeleteCheckpoint)
			checkpoints.GET("/:id/events", checkpointHandler.GetCheckpointLedger)
		}

		events := api.Group("/events")
		{
			events.GET("", reportHandler.GetEvents)
			events.GET("/:id", reportHandler.GetEvent)

			events.GET("/stats/dashboard", reportHandler.GetDashboardStats)
			events.GET("/stats/time-series", reportHandler.GetCheckInTimeSeries)
			events.GET("/stats/busiest-locations", reportHandler.GetBusiestLocations)
			events.GET("/stats/most-active", reportHandler.GetMostActiveMilitaries)
		}

		simulation := api.Group("/simulate")
		simulation.Use(authMiddleware.AdminRequired())
		{
			simulation.POST("/scan", simulationHandler.SimulateScan)
		}
	}

	// Endpoint dos leitores dos portões: autenticados por chave de API, sem
	// operador logado.
	reader := router.Group("/reader")

	if config.APIKeyRequired {
		reader.Use(apiKeyMiddleware.APIKeyRequired())
	}

	{
		reader.POST("/scan", requestHandler.ScanCredential)
	}

	return router
}
