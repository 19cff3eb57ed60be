package database

import (
	"testing"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestEnsureMasterDefaultsSeedsAllTables(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, EnsureMasterDefaults(db, zap.NewNop()))

	for _, info := range models.MasterTables {
		var count int64
		require.NoError(t, db.Table(info.Name).
			Where("name IN ?", info.Defaults).
			Count(&count).Error)
		assert.Equal(t, int64(len(info.Defaults)), count, info.Name)
	}

	var statuses []string
	require.NoError(t, db.Table("dim_account").Pluck("status", &statuses).Error)
	for _, status := range statuses {
		assert.Equal(t, models.StatusActive, status)
	}
}

func TestEnsureMasterDefaultsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, EnsureMasterDefaults(db, zap.NewNop()))
	require.NoError(t, EnsureMasterDefaults(db, zap.NewNop()))

	var count int64
	require.NoError(t, db.Model(&models.DimCategory{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}

func TestEnsureMasterDefaultsMergesDuplicates(t *testing.T) {
	db := newTestDB(t)

	// dim_category 的 name 没有唯一索引，早期重复播种会留下同名行
	first := models.DimCategory{Name: "投资转出", Status: models.StatusActive}
	require.NoError(t, db.Create(&first).Error)
	dup := models.DimCategory{Name: "投资转出", Status: models.StatusActive}
	require.NoError(t, db.Create(&dup).Error)

	flow := models.CashFlow{
		Date:       mustDate(t, "2024-01-10"),
		AccountID:  1,
		CategoryID: &dup.ID,
		FlowType:   "expense",
		Amount:     100,
		Status:     models.StatusActive,
	}
	require.NoError(t, db.Create(&flow).Error)

	require.NoError(t, EnsureMasterDefaults(db, zap.NewNop()))

	// 同名行只保留 id 最小的一条
	var rows []models.DimCategory
	require.NoError(t, db.Where("name = ?", "投资转出").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)

	// 事务表外键改指保留行
	var got models.CashFlow
	require.NoError(t, db.First(&got, flow.ID).Error)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, first.ID, *got.CategoryID)
}

func TestEnsureMasterDefaultsReactivatesInactive(t *testing.T) {
	db := newTestDB(t)

	acc := models.DimAccount{Name: "现金账户", Status: models.StatusInactive}
	require.NoError(t, db.Create(&acc).Error)

	require.NoError(t, EnsureMasterDefaults(db, zap.NewNop()))

	var got models.DimAccount
	require.NoError(t, db.First(&got, acc.ID).Error)
	assert.Equal(t, models.StatusActive, got.Status)

	var count int64
	require.NoError(t, db.Model(&models.DimAccount{}).
		Where("name = ?", "现金账户").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}
