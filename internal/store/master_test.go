package store

import (
	"fmt"
	"testing"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func masterNames(t *testing.T, s *Store, key string, includeInactive bool) []string {
	t.Helper()
	grouped, err := s.ListMaster(includeInactive)
	require.NoError(t, err)
	rows, ok := grouped[key]
	require.True(t, ok, "missing group %s", key)
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, fmt.Sprint(row["name"]))
	}
	return names
}

func TestCreateMaster(t *testing.T) {
	s := newTestStore(t)

	record, err := s.CreateMaster("dim_account", " 招商银行 ")
	require.NoError(t, err)
	acc, ok := record.(*models.DimAccount)
	require.True(t, ok)
	assert.NotZero(t, acc.ID)
	assert.Equal(t, "招商银行", acc.Name)
	assert.Equal(t, models.StatusActive, acc.Status)

	assert.Contains(t, masterNames(t, s, "accounts", false), "招商银行")
}

func TestCreateMasterRejectsBadInput(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateMaster("dim_account", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateMaster("no_such_table", "x")
	assert.ErrorIs(t, err, ErrUnsupportedTable)

	_, err = s.CreateMaster("dim_account", "现金账户")
	require.NoError(t, err)
	_, err = s.CreateMaster("dim_account", "现金账户")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSetMasterStatus(t *testing.T) {
	s := newTestStore(t)
	record, err := s.CreateMaster("dim_account", "旧账户")
	require.NoError(t, err)
	acc := record.(*models.DimAccount)

	require.NoError(t, s.SetMasterStatus("dim_account", acc.ID, models.StatusInactive))
	assert.NotContains(t, masterNames(t, s, "accounts", false), "旧账户")
	assert.Contains(t, masterNames(t, s, "accounts", true), "旧账户")

	require.NoError(t, s.SetMasterStatus("dim_account", acc.ID, models.StatusActive))
	assert.Contains(t, masterNames(t, s, "accounts", false), "旧账户")

	assert.ErrorIs(t, s.SetMasterStatus("dim_account", 9999, models.StatusInactive), ErrNotFound)
	assert.ErrorIs(t, s.SetMasterStatus("dim_account", acc.ID, "deleted"), ErrValidation)
	assert.ErrorIs(t, s.SetMasterStatus("no_such_table", acc.ID, models.StatusActive), ErrUnsupportedTable)
}

func TestUpdateMaster(t *testing.T) {
	s := newTestStore(t)
	record, err := s.CreateMaster("dim_category", "吃饭")
	require.NoError(t, err)
	cat := record.(*models.DimCategory)

	newName := "餐饮"
	inactive := models.StatusInactive
	require.NoError(t, s.UpdateMaster("dim_category", cat.ID, &newName, &inactive))

	var got models.DimCategory
	require.NoError(t, s.db.First(&got, cat.ID).Error)
	assert.Equal(t, "餐饮", got.Name)
	assert.Equal(t, models.StatusInactive, got.Status)

	// 两个参数都不传时是空操作
	require.NoError(t, s.UpdateMaster("dim_category", cat.ID, nil, nil))

	assert.ErrorIs(t, s.UpdateMaster("dim_category", 9999, &newName, nil), ErrNotFound)
}

func TestMasterImpact(t *testing.T) {
	s := newTestStore(t)
	acc := mustAccount(t, s, "现金账户")

	impact, err := s.MasterImpact("dim_account", acc.ID)
	require.NoError(t, err)
	assert.Empty(t, impact)

	_, err = s.CreateCashFlow(CashFlowInput{
		Date:      day(t, "2024-03-01"),
		AccountID: acc.ID,
		FlowType:  "income",
		Amount:    100,
	})
	require.NoError(t, err)

	impact, err = s.MasterImpact("dim_account", acc.ID)
	require.NoError(t, err)
	require.Len(t, impact, 1)
	assert.Equal(t, "cash_flow", impact[0].Table)
	assert.Equal(t, int64(1), impact[0].Count)

	// 有引用也允许停用，由界面层提示风险
	require.NoError(t, s.SetMasterStatus("dim_account", acc.ID, models.StatusInactive))
}
