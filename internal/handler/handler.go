package handler

import (
	"errors"
	"net/http"

	"github.com/gzxsprite-cmd/PFIS/internal/store"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/gin-gonic/gin"
)

// writeStoreErr 把 store 层错误映射成统一的 HTTP 返回。
func writeStoreErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "记录不存在")
	case errors.Is(err, store.ErrUnsupportedTable):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "不支持的主数据表")
	case errors.Is(err, store.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误："+err.Error())
	case errors.Is(err, store.ErrConflict):
		util.Error(c, http.StatusConflict, util.CodeConflict, "数据冲突，名称可能已存在")
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "服务器内部错误")
	}
}
