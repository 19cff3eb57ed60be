package store

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 统一的业务错误，handler 层据此映射 HTTP 状态码。
var (
	ErrNotFound         = errors.New("record not found")
	ErrUnsupportedTable = errors.New("unsupported master table")
	ErrValidation       = errors.New("invalid input")
	ErrConflict         = errors.New("constraint violation")
)

// Store 聚合全部数据操作，持有显式传入的数据库连接和日志器。
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// translateErr 把 gorm 的错误翻译成本包的哨兵错误。
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isConstraintErr(err) {
		return ErrConflict
	}
	return err
}

func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint") ||
		strings.Contains(msg, "constraint failed")
}

// activeScope 过滤出有效行。历史数据的 status 可能是 NULL 或空串，按有效处理。
func activeScope(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? OR status IS NULL OR status = ''", "active")
}
