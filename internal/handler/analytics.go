package handler

import (
	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 负责汇总分析接口
type AnalyticsHandler struct {
	Store *store.Store
}

func NewAnalyticsHandler(s *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{Store: s}
}

// Summary 总体收支概览
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.Store.AnalyticsSummary()
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// Monthly 逐月收支序列（含累计净现金和投资比例）
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	points, err := h.Store.MonthlyCashflow()
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"months": points, "total": len(points)})
}

// Holdings 持仓组合视图
func (h *AnalyticsHandler) Holdings(c *gin.Context) {
	holdings, err := h.Store.ListHoldings()
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": holdings, "total": len(holdings)})
}
