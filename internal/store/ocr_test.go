package store

import (
	"testing"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOcrPendingQueue(t *testing.T) {
	s := newTestStore(t)

	item, err := s.AddOcrPending("cashflow", "data/uploads/cashflow_abc.png", "账单截图")
	require.NoError(t, err)
	assert.Equal(t, models.OcrStatusPending, item.Status)

	_, err = s.AddOcrPending("", "x.png", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddOcrPending("cashflow", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	items, err := s.ListOcrPending()
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, s.SetOcrStatus(item.ID, models.OcrStatusProcessed))
	got, err := s.ListOcrPending()
	require.NoError(t, err)
	assert.Equal(t, models.OcrStatusProcessed, got[0].Status)

	assert.ErrorIs(t, s.SetOcrStatus(item.ID, "done"), ErrValidation)
	assert.ErrorIs(t, s.SetOcrStatus(9999, models.OcrStatusDiscarded), ErrNotFound)
}
