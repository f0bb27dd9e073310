package fx

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/shak0x90/steadygainsinvestments-sub000/config"
	docs "github.com/shak0x90/steadygainsinvestments-sub000/docs"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/logger"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/middleware"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/routes"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(rateLimiter))
	api.Use(middleware.AuthMiddleware(jwtSvc))
	api.Use(middleware.RateLimitByUser())
	{
		api.GET("/summary", handler.GetSummary)

		transactions := api.Group("/transactions")
		{
			transactions.POST("/deposit", handler.RequestDeposit)
			transactions.POST("/withdrawal", handler.RequestWithdrawal)
			transactions.GET("", handler.ListTransactions)
			transactions.GET("/:id", handler.GetTransaction)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("", handler.Subscribe)
			subscriptions.GET("", handler.ListSubscriptions)
			subscriptions.POST("/modification", handler.RequestModification)
			subscriptions.DELETE("/modification", handler.CancelModification)
		}

		api.GET("/invoices", handler.ListInvoices)

		plans := api.Group("/plans")
		{
			plans.GET("", handler.ListPlans)
			plans.GET("/:name", handler.GetPlan)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/transactions/:id/approve", handler.ApproveDeposit)
			admin.POST("/transactions/:id/resolve", handler.ResolveWithdrawal)
			admin.GET("/transactions", handler.ListAllTransactions)

			admin.POST("/subscriptions/:id/modification/approve", handler.ApproveModification)
			admin.POST("/subscriptions/:id/modification/reject", handler.RejectModification)

			admin.POST("/returns", handler.IssueReturn)

			admin.POST("/plans", handler.CreatePlan)
			admin.PATCH("/plans/:id", handler.UpdatePlan)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Server starting")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Server stopping...")
			return nil
		},
	})
}
