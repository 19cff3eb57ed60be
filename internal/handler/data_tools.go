package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// DataToolsHandler 负责整库导出/导入接口
type DataToolsHandler struct {
	Store *store.Store
}

func NewDataToolsHandler(s *store.Store) *DataToolsHandler {
	return &DataToolsHandler{Store: s}
}

// Export 把所有表导出成一个 xlsx，每表一个工作表
func (h *DataToolsHandler) Export(c *gin.Context) {
	f, err := h.Store.ExportWorkbook()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "导出失败")
		return
	}

	filename := fmt.Sprintf("PFIS_Backup_%s.xlsx", time.Now().Format("20060102_1504"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "导出失败")
	}
}

// Import 从 xlsx 恢复数据。mode=replace 先清空再导入，mode=append 按主键合并。
// 逐表处理，单表失败只记入摘要，不影响其余表。
func (h *DataToolsHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "请上传文件")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "仅支持 .xlsx 文件")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "读取文件失败")
		return
	}
	defer src.Close()

	wb, err := excelize.OpenReader(src)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "文件解析失败："+err.Error())
		return
	}
	defer wb.Close()

	mode := c.DefaultPostForm("mode", "replace")
	summary := h.Store.ImportWorkbook(wb, mode)

	util.Success(c, util.Response{"summary": summary})
}
