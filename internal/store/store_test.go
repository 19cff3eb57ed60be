package store

import (
	"testing"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/database"
	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestStore 在内存 SQLite 上建一个干净的 Store，每个用例互相隔离。
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return New(db, nil)
}

func mustAccount(t *testing.T, s *Store, name string) *models.DimAccount {
	t.Helper()
	acc := models.DimAccount{Name: name, Status: models.StatusActive}
	require.NoError(t, s.db.Create(&acc).Error)
	return &acc
}

func mustAction(t *testing.T, s *Store, name string) *models.DimActionType {
	t.Helper()
	act := models.DimActionType{Name: name, Status: models.StatusActive}
	require.NoError(t, s.db.Create(&act).Error)
	return &act
}

func mustProduct(t *testing.T, s *Store, name string) *models.ProductMaster {
	t.Helper()
	p, err := s.CreateProduct(ProductInput{Name: name})
	require.NoError(t, err)
	return p
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}
