package handler

import (
	"net/http"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// CashFlowHandler 负责现金流流水接口
type CashFlowHandler struct {
	Store *store.Store
}

func NewCashFlowHandler(s *store.Store) *CashFlowHandler {
	return &CashFlowHandler{Store: s}
}

// 金额用字符串传，服务端用 decimal 解析，避免前端浮点精度问题
type cashFlowReq struct {
	Date             string `json:"date" binding:"required"`
	AccountID        uint   `json:"account_id" binding:"required"`
	CategoryID       *uint  `json:"category_id"`
	FlowType         string `json:"flow_type" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
	SourceTypeID     *uint  `json:"source_type_id"`
	Remark           string `json:"remark" binding:"max=255"`
	LinkInvestmentID *uint  `json:"link_investment_id"`
}

func (req *cashFlowReq) toInput(c *gin.Context) (store.CashFlowInput, bool) {
	var in store.CashFlowInput

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

	in = store.CashFlowInput{
		Date:             date,
		AccountID:        req.AccountID,
		CategoryID:       req.CategoryID,
		FlowType:         req.FlowType,
		Amount:           amount,
		SourceTypeID:     req.SourceTypeID,
		Remark:           req.Remark,
		LinkInvestmentID: req.LinkInvestmentID,
	}
	return in, true
}

// List 现金流列表，默认不含已作废行
func (h *CashFlowHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "1"
	flows, err := h.Store.ListCashFlows(includeInactive)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": flows, "total": len(flows)})
}

// Create 记一笔现金流
func (h *CashFlowHandler) Create(c *gin.Context) {
	var req cashFlowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	flow, err := h.Store.CreateCashFlow(in)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"cash_flow": flow})
}

// Update 整行覆盖一条现金流
func (h *CashFlowHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req cashFlowReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	flow, err := h.Store.UpdateCashFlow(id, in)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"cash_flow": flow})
}

// Delete 软删除：仅置 inactive，历史聚合保持可追溯
func (h *CashFlowHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Store.SoftDeleteCashFlow(id); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "删除成功"})
}
