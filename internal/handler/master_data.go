package handler

import (
	"net/http"
	"strconv"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// MasterDataHandler 负责主数据维护接口
type MasterDataHandler struct {
	Store *store.Store
}

func NewMasterDataHandler(s *store.Store) *MasterDataHandler {
	return &MasterDataHandler{Store: s}
}

type createMasterReq struct {
	Table string `json:"table" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

type updateMasterReq struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type setStatusReq struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// List 返回全部主数据，?include_inactive=1 时带上已停用行
func (h *MasterDataHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "1" || c.Query("include_inactive") == "true"
	data, err := h.Store.ListMaster(includeInactive)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"master_data": data})
}

// Create 在指定主数据表新增一行
func (h *MasterDataHandler) Create(c *gin.Context) {
	var req createMasterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	record, err := h.Store.CreateMaster(req.Table, req.Name)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"item": record})
}

// Update 重命名或修改状态
func (h *MasterDataHandler) Update(c *gin.Context) {
	table := c.Param("table")
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateMasterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	if err := h.Store.UpdateMaster(table, id, req.Name, req.Status); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "已更新"})
}

// SetStatus 启用/停用一行。停用不会被已有引用阻止，前端先调 Impact 提示。
func (h *MasterDataHandler) SetStatus(c *gin.Context) {
	table := c.Param("table")
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	if err := h.Store.SetMasterStatus(table, id, req.Status); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "状态已更新"})
}

// Impact 查询各事务表对该行的引用数量
func (h *MasterDataHandler) Impact(c *gin.Context) {
	table := c.Param("table")
	id, ok := parseID(c)
	if !ok {
		return
	}
	impact, err := h.Store.MasterImpact(table, id)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"impact": impact})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID 不合法")
		return 0, false
	}
	return uint(id), true
}
