package database

import (
	"fmt"
	"strings"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type masterRow struct {
	ID     uint
	Name   string
	Status string
}

// EnsureMasterDefaults 写入各主数据表的默认行，并清理早期重复播种留下的同名行。
// 可重复执行：同名行只保留 id 最小的一条（必要时重新激活），其余行先把事务表
// 外键改指到保留行再删除；缺失的默认名补齐，并发导致的唯一键冲突直接跳过。
func EnsureMasterDefaults(db *gorm.DB, log *zap.Logger) error {
	for _, info := range models.MasterTables {
		if len(info.Defaults) == 0 {
			continue
		}
		if err := seedTable(db, log, info); err != nil {
			return fmt.Errorf("seed %s: %w", info.Name, err)
		}
	}
	return nil
}

func seedTable(db *gorm.DB, log *zap.Logger, info models.TableInfo) error {
	var rows []masterRow
	if err := db.Table(info.Name).
		Where("name IN ?", info.Defaults).
		Order("id").
		Find(&rows).Error; err != nil {
		return err
	}

	kept := make(map[string]masterRow, len(info.Defaults))
	for _, row := range rows {
		primary, seen := kept[row.Name]
		if !seen {
			if info.HasStatus && row.Status != models.StatusActive {
				if err := db.Table(info.Name).
					Where("id = ?", row.ID).
					Update("status", models.StatusActive).Error; err != nil {
					return err
				}
			}
			kept[row.Name] = row
			continue
		}

		// 重复行：外键全部改指保留行后删除
		dup := row
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, ref := range info.Refs {
				if err := tx.Table(ref.Table).
					Where(ref.Column+" = ?", dup.ID).
					Update(ref.Column, primary.ID).Error; err != nil {
					return err
				}
			}
			return tx.Exec("DELETE FROM "+info.Name+" WHERE id = ?", dup.ID).Error
		})
		if err != nil {
			return err
		}
		log.Info("merged duplicate master row",
			zap.String("table", info.Name),
			zap.String("name", dup.Name),
			zap.Uint("duplicate_id", dup.ID),
			zap.Uint("primary_id", primary.ID))
	}

	var existing []string
	if err := db.Table(info.Name).
		Where("name IN ?", info.Defaults).
		Pluck("name", &existing).Error; err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}

	for _, name := range info.Defaults {
		if _, ok := have[name]; ok {
			continue
		}
		values := map[string]interface{}{"name": name}
		if info.HasStatus {
			values["status"] = models.StatusActive
		}
		if err := db.Table(info.Name).Create(&values).Error; err != nil {
			// 并发初始化时的唯一键冲突属于正常情况，跳过即可
			if isUniqueViolation(err) {
				log.Debug("seed race, name already present",
					zap.String("table", info.Name), zap.String("name", name))
				continue
			}
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "constraint failed")
}
