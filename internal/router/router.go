package router

import (
	"github.com/gzxsprite-cmd/PFIS/internal/config"
	"github.com/gzxsprite-cmd/PFIS/internal/handler"
	"github.com/gzxsprite-cmd/PFIS/internal/middleware"
	"github.com/gzxsprite-cmd/PFIS/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, s *store.Store, log *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	api := r.Group("/api")

	// 主数据维护
	masterHandler := handler.NewMasterDataHandler(s)
	api.GET("/master", masterHandler.List)
	api.POST("/master", masterHandler.Create)
	api.PUT("/master/:table/:id", masterHandler.Update)
	api.POST("/master/:table/:id/status", masterHandler.SetStatus)
	api.GET("/master/:table/:id/impact", masterHandler.Impact)

	// 现金流
	cashFlowHandler := handler.NewCashFlowHandler(s)
	api.GET("/cashflows", cashFlowHandler.List)
	api.POST("/cashflows", cashFlowHandler.Create)
	api.PUT("/cashflows/:id", cashFlowHandler.Update)
	api.DELETE("/cashflows/:id", cashFlowHandler.Delete)

	// 理财操作
	investmentHandler := handler.NewInvestmentHandler(s)
	api.GET("/investments", investmentHandler.List)
	api.POST("/investments", investmentHandler.Create)
	api.PUT("/investments/:id", investmentHandler.Update)
	api.DELETE("/investments/:id", investmentHandler.Delete)
	api.GET("/investments/reconciliation", investmentHandler.Reconciliation)

	// 产品与指标
	productHandler := handler.NewProductHandler(s, cfg.App.MetricLimit)
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Create)
	api.GET("/products/:id", productHandler.Get)
	api.PUT("/products/:id", productHandler.Update)
	api.POST("/products/:id/status", productHandler.SetStatus)
	api.POST("/products/:id/metrics", productHandler.AddMetric)
	api.GET("/metrics", productHandler.ListMetrics)
	api.PUT("/metrics/:id", productHandler.UpdateMetric)

	// 汇总分析
	analyticsHandler := handler.NewAnalyticsHandler(s)
	api.GET("/analytics/summary", analyticsHandler.Summary)
	api.GET("/analytics/monthly", analyticsHandler.Monthly)
	api.GET("/analytics/holdings", analyticsHandler.Holdings)

	// 数据备份/恢复
	dataHandler := handler.NewDataToolsHandler(s)
	api.GET("/data/export", dataHandler.Export)
	api.POST("/data/import", dataHandler.Import)

	// 上传凭证队列
	ocrHandler := handler.NewOcrHandler(s, cfg.Upload.Dir)
	api.GET("/ocr", ocrHandler.List)
	api.POST("/ocr/upload", ocrHandler.Upload)
	api.POST("/ocr/:id/status", ocrHandler.SetStatus)

	// 投资模拟
	simulationHandler := handler.NewSimulationHandler(s)
	api.POST("/simulation/calc", simulationHandler.Calc)

	return r
}
