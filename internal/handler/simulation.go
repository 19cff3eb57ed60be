package handler

import (
	"net/http"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// SimulationHandler 投资模拟测算
type SimulationHandler struct {
	Store *store.Store
}

func NewSimulationHandler(s *store.Store) *SimulationHandler {
	return &SimulationHandler{Store: s}
}

type simulationReq struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Days      int    `json:"days" binding:"required"`
}

// Calc 按持仓平均收益率估算持有收益
func (h *SimulationHandler) Calc(c *gin.Context) {
	var req simulationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "请输入有效金额")
		return
	}
	result, err := h.Store.SimulateReturn(req.ProductID, amount, req.Days)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"result": result})
}
