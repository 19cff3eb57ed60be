package store

import (
	"testing"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)

	product, err := s.CreateProduct(ProductInput{Name: "余额宝", Remark: "货币基金"})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, models.StatusActive, product.Status)

	_, err = s.CreateProduct(ProductInput{Name: "余额宝"})
	assert.ErrorIs(t, err, ErrConflict, "duplicate product name")

	got, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "余额宝", got.Name)

	launch := day(t, "2020-06-01")
	updated, err := s.UpdateProduct(product.ID, ProductInput{
		Name: "余额宝plus", LaunchDate: &launch,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "余额宝plus", updated.Name)
	require.NotNil(t, updated.LaunchDate)

	require.NoError(t, s.SetProductStatus(product.ID, models.StatusInactive))
	products, err := s.ListProducts(false)
	require.NoError(t, err)
	assert.Empty(t, products)
	products, err = s.ListProducts(true)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = s.GetProduct(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMetricConflict(t *testing.T) {
	s := newTestStore(t)
	product := mustProduct(t, s, "余额宝")
	metric := models.DimMetric{Name: "净值", Status: models.StatusActive}
	require.NoError(t, s.db.Create(&metric).Error)

	in := MetricInput{
		ProductID:  product.ID,
		MetricID:   metric.ID,
		RecordDate: day(t, "2024-05-01"),
		Value:      1.0235,
		Source:     "手动",
	}
	_, err := s.AddMetric(in)
	require.NoError(t, err)

	// 同产品同指标同日期只允许一条
	_, err = s.AddMetric(in)
	assert.ErrorIs(t, err, ErrConflict)

	in.RecordDate = day(t, "2024-05-02")
	_, err = s.AddMetric(in)
	require.NoError(t, err)
}

func TestListMetricsFilterAndLimit(t *testing.T) {
	s := newTestStore(t)
	product := mustProduct(t, s, "余额宝")
	other := mustProduct(t, s, "理财通")
	metric := models.DimMetric{Name: "收益率", Status: models.StatusActive}
	require.NoError(t, s.db.Create(&metric).Error)

	base := day(t, "2024-01-01")
	for i := 0; i < 5; i++ {
		_, err := s.AddMetric(MetricInput{
			ProductID:  product.ID,
			MetricID:   metric.ID,
			RecordDate: base.AddDate(0, 0, i),
			Value:      float64(i),
		})
		require.NoError(t, err)
	}
	_, err := s.AddMetric(MetricInput{
		ProductID: other.ID, MetricID: metric.ID, RecordDate: base, Value: 9,
	})
	require.NoError(t, err)

	metrics, err := s.ListMetrics(product.ID, 0, 3)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	// 按日期倒序
	assert.True(t, metrics[0].RecordDate.After(metrics[1].RecordDate))

	metrics, err = s.ListMetrics(0, 0, 0)
	require.NoError(t, err)
	assert.Len(t, metrics, 6, "limit 0 falls back to default")
}

func TestUpdateMetric(t *testing.T) {
	s := newTestStore(t)
	product := mustProduct(t, s, "余额宝")
	metric := models.DimMetric{Name: "净值", Status: models.StatusActive}
	require.NoError(t, s.db.Create(&metric).Error)

	created, err := s.AddMetric(MetricInput{
		ProductID: product.ID, MetricID: metric.ID, RecordDate: day(t, "2024-05-01"), Value: 1.0,
	})
	require.NoError(t, err)

	updated, err := s.UpdateMetric(created.ID, MetricInput{
		ProductID: product.ID, MetricID: metric.ID, RecordDate: day(t, "2024-05-01"), Value: 1.05,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.05, updated.Value)

	_, err = s.UpdateMetric(9999, MetricInput{
		ProductID: product.ID, MetricID: metric.ID, RecordDate: day(t, "2024-05-01"), Value: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimulateReturn(t *testing.T) {
	s := newTestStore(t)
	product := mustProduct(t, s, "余额宝")

	// 没有持仓记录时按默认年化 3.5% 估算
	result, err := s.SimulateReturn(product.ID, 10000, 365)
	require.NoError(t, err)
	assert.Equal(t, 0.035, result.AnnualYield)
	assert.InDelta(t, 350.0, result.EstProfit, 0.001)

	// 有持仓时用持仓收益率，偏低时按 2% 保底
	now := time.Now()
	holding := models.HoldingStatus{ProductID: product.ID, AvgYield: 0.05, LastUpdate: &now}
	require.NoError(t, s.db.Create(&holding).Error)
	result, err = s.SimulateReturn(product.ID, 10000, 730)
	require.NoError(t, err)
	assert.Equal(t, 0.05, result.AnnualYield)
	assert.InDelta(t, 1000.0, result.EstProfit, 0.001)

	require.NoError(t, s.db.Model(&holding).Update("avg_yield", 0.001).Error)
	result, err = s.SimulateReturn(product.ID, 10000, 365)
	require.NoError(t, err)
	assert.Equal(t, 0.02, result.AnnualYield)

	_, err = s.SimulateReturn(9999, 1000, 30)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.SimulateReturn(product.ID, -5, 30)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.SimulateReturn(product.ID, 1000, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
