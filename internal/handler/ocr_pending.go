package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 允许上传的凭证图片格式
var allowedImageExt = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {},
}

// OcrHandler 负责上传凭证队列接口。识别本身由外部流程完成，这里只收文件、入队。
type OcrHandler struct {
	Store     *store.Store
	UploadDir string
}

func NewOcrHandler(s *store.Store, uploadDir string) *OcrHandler {
	return &OcrHandler{Store: s, UploadDir: uploadDir}
}

// List 待处理凭证列表
func (h *OcrHandler) List(c *gin.Context) {
	items, err := h.Store.ListOcrPending()
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}

// Upload 保存截图并登记一条待识别记录
func (h *OcrHandler) Upload(c *gin.Context) {
	module := c.DefaultPostForm("module", "cash_flow")
	remark := c.PostForm("remark")

	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "请上传图片")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExt[ext]; !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "仅支持 png/jpg/jpeg 图片")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建上传目录失败")
		return
	}
	fileName := fmt.Sprintf("%s_%s%s", module, uuid.New().String(), ext)
	dst := filepath.Join(h.UploadDir, fileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "保存文件失败")
		return
	}

	item, err := h.Store.AddOcrPending(module, dst, remark)
	if err != nil {
		_ = os.Remove(dst)
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"item": item})
}

// SetStatus 更新凭证处理状态（pending/processed/discarded）
func (h *OcrHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}
	if err := h.Store.SetOcrStatus(id, req.Status); err != nil {
		writeStoreErr(c, err)
		return
	}
	util.Success(c, util.Response{"message": "状态已更新"})
}
