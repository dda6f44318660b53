package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/skyloyalty/miles-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	queryHandler *handler.QueryHandler,
	staffHandler *handler.StaffHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.GET("/:userId/balance", queryHandler.GetBalance)
			users.GET("/:userId/transactions", queryHandler.GetUserTransactions)
			users.POST("/:userId/credit", ledgerHandler.Credit)
			users.POST("/:userId/debit", ledgerHandler.Debit)
			users.PUT("/:userId/miles", ledgerHandler.SetMiles)
		}

		v1.GET("/transactions", queryHandler.GetAllTransactions)
		v1.GET("/leaderboard", queryHandler.GetLeaderboard)
		v1.GET("/stats", queryHandler.GetStats)

		staff := v1.Group("/staff")
		{
			staff.GET("", staffHandler.List)
			staff.POST("", staffHandler.Add)
			staff.DELETE("/:userId", staffHandler.Remove)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())
}
