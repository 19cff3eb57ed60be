package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// ProductHandler 负责理财产品主档和指标接口
type ProductHandler struct {
	Store       *store.Store
	MetricLimit int
}

func NewProductHandler(s *store.Store, metricLimit int) *ProductHandler {
	if metricLimit <= 0 {
		metricLimit = 50
	}
	return &ProductHandler{Store: s, MetricLimit: metricLimit}
}

type productReq struct {
	Name             string `json:"name" binding:"required"`
	TypeID           *uint  `json:"type_id"`
	RiskLevelID      *uint  `json:"risk_level_id"`
	InvestmentTermID *uint  `json:"investment_term_id"`
	LaunchDate       string `json:"launch_date"`
	Remark           string `json:"remark"`
	Status           string `json:"status"`
}

func (req *productReq) toInput(c *gin.Context) (store.ProductInput, bool) {
	var launch *time.Time
	if req.LaunchDate != "" {
		t, err := util.ParseDate(req.LaunchDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "成立日期格式错误")
			return store.ProductInput{}, false
		}
		launch = &t
	}
	return store.ProductInput{
		Name:             req.Name,
		TypeID:           req.TypeID,
		RiskLevelID:      req.RiskLevelID,
		InvestmentTermID: req.InvestmentTermID,
		LaunchDate:       launch,
		Remark:           req.Remark,
	}, true
}

// List 产品列表
func (h *ProductHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "1"
	products, err := h.Store.ListProducts(includeInactive)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": products, "total": len(products)})
}

// Get 产品详情
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.Store.GetProduct(id)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"product": product})
}

// Create 新增产品
func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	product, err := h.Store.CreateProduct(in)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"product": product})
}

// Update 修改产品，可同时带 status
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	product, err := h.Store.UpdateProduct(id, in, req.Status)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"product": product})
}

// SetStatus 上下架产品
func (h *ProductHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	if err := h.Store.SetProductStatus(id, req.Status); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "状态已更新"})
}

type metricReq struct {
	MetricID   uint    `json:"metric_id" binding:"required"`
	RecordDate string  `json:"record_date" binding:"required"`
	Value      float64 `json:"value"`
	Source     string  `json:"source"`
	Remark     string  `json:"remark"`
}

// AddMetric 给产品追加一条指标记录
func (h *ProductHandler) AddMetric(c *gin.Context) {
	productID, ok := parseID(c)
	if !ok {
		return
	}
	var req metricReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	recordDate, err := util.ParseDate(req.RecordDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "记录日期格式错误")
		return
	}
	metric, err := h.Store.AddMetric(store.MetricInput{
		ProductID:  productID,
		MetricID:   req.MetricID,
		RecordDate: recordDate,
		Value:      req.Value,
		Source:     req.Source,
		Remark:     req.Remark,
	})
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"metric": metric})
}

// UpdateMetric 修正一条已录入的指标记录
func (h *ProductHandler) UpdateMetric(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID  uint    `json:"product_id" binding:"required"`
		MetricID   uint    `json:"metric_id" binding:"required"`
		RecordDate string  `json:"record_date" binding:"required"`
		Value      float64 `json:"value"`
		Source     string  `json:"source"`
		Remark     string  `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	recordDate, err := util.ParseDate(req.RecordDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "记录日期格式错误")
		return
	}
	metric, err := h.Store.UpdateMetric(id, store.MetricInput{
		ProductID:  req.ProductID,
		MetricID:   req.MetricID,
		RecordDate: recordDate,
		Value:      req.Value,
		Source:     req.Source,
		Remark:     req.Remark,
	})
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"metric": metric})
}

// ListMetrics 指标序列查询，?product_id= & ?metric_id= & ?limit=
func (h *ProductHandler) ListMetrics(c *gin.Context) {
	productID, _ := strconv.Atoi(c.DefaultQuery("product_id", "0"))
	metricID, _ := strconv.Atoi(c.DefaultQuery("metric_id", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit <= 0 || limit > 500 {
		limit = h.MetricLimit
	}
	metrics, err := h.Store.ListMetrics(uint(productID), uint(metricID), limit)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": metrics, "total": len(metrics)})
}
