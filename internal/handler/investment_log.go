package handler

import (
	"net/http"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// InvestmentHandler 负责理财操作记录接口
type InvestmentHandler struct {
	Store *store.Store
}

func NewInvestmentHandler(s *store.Store) *InvestmentHandler {
	return &InvestmentHandler{Store: s}
}

type investmentReq struct {
	Date             string `json:"date" binding:"required"`
	ProductID        uint   `json:"product_id" binding:"required"`
	ActionID         uint   `json:"action_id" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
	ChannelAccountID *uint  `json:"channel_account_id"`
	Remark           string `json:"remark"`
	// 省略时默认联动生成现金流
	LinkCashflow *bool `json:"link_cashflow"`
}

func (req *investmentReq) toInput(c *gin.Context) (store.InvestmentInput, bool) {
	var in store.InvestmentInput

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "日期格式错误，应为 YYYY-MM-DD")
		return in, false
	}
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "请输入有效金额")
		return in, false
	}

	in = store.InvestmentInput{
		Date:             date,
		ProductID:        req.ProductID,
		ActionID:         req.ActionID,
		Amount:           amount,
		ChannelAccountID: req.ChannelAccountID,
		Remark:           req.Remark,
	}
	return in, true
}

// List 理财流水列表
func (h *InvestmentHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "1"
	logs, err := h.Store.ListInvestments(includeInactive)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": logs, "total": len(logs)})
}

// Create 记录理财操作，默认自动联动现金流
func (h *InvestmentHandler) Create(c *gin.Context) {
	var req investmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	linkCashflow := req.LinkCashflow == nil || *req.LinkCashflow
	log, err := h.Store.CreateInvestment(in, linkCashflow)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"investment": log})
}

// Update 整行覆盖一条理财记录
func (h *InvestmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req investmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	log, err := h.Store.UpdateInvestment(id, in)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"investment": log})
}

// Delete 软删除理财记录
func (h *InvestmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Store.SoftDeleteInvestment(id); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "删除成功"})
}

// Reconciliation 每月理财流水与联动现金流的对账报表。
// 只读诊断，不做任何修正。
func (h *InvestmentHandler) Reconciliation(c *gin.Context) {
	rows, err := h.Store.Reconciliation()
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	inconsistent := 0
	for _, row := range rows {
		if row.Inconsistent {
			inconsistent++
		}
	}
	util.Success(c, util.Response{
		"months":             rows,
		"inconsistent_count": inconsistent,
	})
}
