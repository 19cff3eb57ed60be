package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"go.uber.org/zap"
)

// ImpactEntry 某张事务表引用给定主数据行的条数。
type ImpactEntry struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// ListMaster 按表分组返回主数据行，按名称排序。
// 默认只返回有效行（NULL/空 status 视为有效）。
func (s *Store) ListMaster(includeInactive bool) (map[string][]map[string]interface{}, error) {
	result := make(map[string][]map[string]interface{}, len(models.MasterTables))
	for _, info := range models.MasterTables {
		q := s.db.Table(info.Name).Order("name")
		if !includeInactive && info.HasStatus {
			q = activeScope(q)
		}
		var rows []map[string]interface{}
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("list %s: %w", info.Name, err)
		}
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		result[info.Key] = rows
	}
	return result, nil
}

// newMasterRecord 为指定主数据表构造一条带名称的新记录。
// 表集合是封闭的，未登记的表名属于调用方编程错误。
func newMasterRecord(table, name string) (interface{}, bool) {
	switch table {
	case "dim_account":
		return &models.DimAccount{Name: name, Status: models.StatusActive}, true
	case "dim_category":
		return &models.DimCategory{Name: name, Status: models.StatusActive}, true
	case "dim_source_type":
		return &models.DimSourceType{Name: name, Status: models.StatusActive}, true
	case "dim_action_type":
		return &models.DimActionType{Name: name, Status: models.StatusActive}, true
	case "dim_product_type":
		return &models.DimProductType{Name: name, Status: models.StatusActive}, true
	case "dim_risk_level":
		return &models.DimRiskLevel{Name: name, Status: models.StatusActive}, true
	case "dim_metric":
		return &models.DimMetric{Name: name, Status: models.StatusActive}, true
	case "dim_investment_term":
		return &models.DimInvestmentTerm{Name: name, Status: models.StatusActive}, true
	}
	return nil, false
}

// CreateMaster 在指定主数据表插入一行，返回带生成 id 的记录。
func (s *Store) CreateMaster(table, name string) (interface{}, error) {
	name = strings.TrimSpace(name)
	if err := util.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	record, ok := newMasterRecord(table, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTable, table)
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, translateErr(err)
	}
	return record, nil
}

// SetMasterStatus 修改主数据行状态。行不存在返回 ErrNotFound；
// 表未声明 status 能力时不做任何事。
func (s *Store) SetMasterStatus(table string, id uint, status string) error {
	info, ok := models.LookupMasterTable(table)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedTable, table)
	}
	if status != models.StatusActive && status != models.StatusInactive {
		return fmt.Errorf("%w: bad status %q", ErrValidation, status)
	}
	if !info.HasStatus {
		return nil
	}

	var count int64
	if err := s.db.Table(info.Name).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return s.db.Table(info.Name).Where("id = ?", id).Update("status", status).Error
}

// UpdateMaster 重命名或改状态，两者均可选。
func (s *Store) UpdateMaster(table string, id uint, name, status *string) error {
	info, ok := models.LookupMasterTable(table)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedTable, table)
	}

	values := map[string]interface{}{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := util.ValidateName(trimmed); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		values["name"] = trimmed
	}
	if status != nil && info.HasStatus {
		if *status != models.StatusActive && *status != models.StatusInactive {
			return fmt.Errorf("%w: bad status %q", ErrValidation, *status)
		}
		values["status"] = *status
	}
	if len(values) == 0 {
		return nil
	}

	var count int64
	if err := s.db.Table(info.Name).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	if err := s.db.Table(info.Name).Where("id = ?", id).Updates(values).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// MasterImpact 统计各事务表对该主数据行的引用量，只返回非零项。
// 停用前由界面层提示，不在这里阻止状态变更。
func (s *Store) MasterImpact(table string, id uint) ([]ImpactEntry, error) {
	info, ok := models.LookupMasterTable(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTable, table)
	}
	impact := []ImpactEntry{}
	for _, ref := range info.Refs {
		var count int64
		if err := s.db.Table(ref.Table).
			Where(ref.Column+" = ?", id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			impact = append(impact, ImpactEntry{Table: ref.Table, Count: count})
		}
	}
	return impact, nil
}

// touchAccount 更新账户的最近使用时间，失败只记日志不影响主流程。
func (s *Store) touchAccount(id uint) {
	now := time.Now()
	if err := s.db.Model(&models.DimAccount{}).
		Where("id = ?", id).
		Update("last_used", now).Error; err != nil {
		s.log.Warn("touch account failed", zap.Uint("account_id", id), zap.Error(err))
	}
}
