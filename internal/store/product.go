package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
	"github.com/gzxsprite-cmd/PFIS/internal/util"
)

// ProductInput 产品主档的可写字段。
type ProductInput struct {
	Name             string
	TypeID           *uint
	RiskLevelID      *uint
	InvestmentTermID *uint
	LaunchDate       *time.Time
	Remark           string
}

// ListProducts 按名称排序返回产品，默认只要有效产品。
func (s *Store) ListProducts(includeInactive bool) ([]models.ProductMaster, error) {
	q := s.db.Model(&models.ProductMaster{}).Order("name")
	if !includeInactive {
		q = activeScope(q)
	}
	var products []models.ProductMaster
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(id uint) (*models.ProductMaster, error) {
	var product models.ProductMaster
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

func (s *Store) CreateProduct(in ProductInput) (*models.ProductMaster, error) {
	name := strings.TrimSpace(in.Name)
	if err := util.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	product := models.ProductMaster{
		Name:             name,
		TypeID:           in.TypeID,
		RiskLevelID:      in.RiskLevelID,
		InvestmentTermID: in.InvestmentTermID,
		LaunchDate:       in.LaunchDate,
		Remark:           in.Remark,
		Status:           models.StatusActive,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, translateErr(err)
	}
	return &product, nil
}

// UpdateProduct 整行覆盖；status 传非空值时一并修改。
func (s *Store) UpdateProduct(id uint, in ProductInput, status string) (*models.ProductMaster, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := util.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	product.Name = name
	product.TypeID = in.TypeID
	product.RiskLevelID = in.RiskLevelID
	product.InvestmentTermID = in.InvestmentTermID
	product.LaunchDate = in.LaunchDate
	product.Remark = in.Remark
	if status != "" {
		if status != models.StatusActive && status != models.StatusInactive {
			return nil, fmt.Errorf("%w: bad status %q", ErrValidation, status)
		}
		product.Status = status
	}
	if err := s.db.Save(product).Error; err != nil {
		return nil, translateErr(err)
	}
	return product, nil
}

func (s *Store) SetProductStatus(id uint, status string) error {
	if status != models.StatusActive && status != models.StatusInactive {
		return fmt.Errorf("%w: bad status %q", ErrValidation, status)
	}
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	return s.db.Model(product).Update("status", status).Error
}

// MetricInput 产品指标记录的可写字段。
type MetricInput struct {
	ProductID  uint
	MetricID   uint
	RecordDate time.Time
	Value      float64
	Source     string
	Remark     string
}

func (in *MetricInput) validate() error {
	if in.ProductID == 0 {
		return fmt.Errorf("%w: product is required", ErrValidation)
	}
	if in.MetricID == 0 {
		return fmt.Errorf("%w: metric is required", ErrValidation)
	}
	if in.RecordDate.IsZero() {
		return fmt.Errorf("%w: record date is required", ErrValidation)
	}
	return nil
}

// AddMetric 追加一条指标记录，(product, metric, record_date) 冲突返回 ErrConflict。
func (s *Store) AddMetric(in MetricInput) (*models.ProductMetric, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	metric := models.ProductMetric{
		ProductID:  in.ProductID,
		MetricID:   in.MetricID,
		RecordDate: in.RecordDate,
		Value:      in.Value,
		Source:     in.Source,
		Remark:     in.Remark,
	}
	if err := s.db.Create(&metric).Error; err != nil {
		return nil, translateErr(err)
	}
	return &metric, nil
}

func (s *Store) UpdateMetric(id uint, in MetricInput) (*models.ProductMetric, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var metric models.ProductMetric
	if err := s.db.First(&metric, id).Error; err != nil {
		return nil, translateErr(err)
	}
	metric.ProductID = in.ProductID
	metric.MetricID = in.MetricID
	metric.RecordDate = in.RecordDate
	metric.Value = in.Value
	metric.Source = in.Source
	metric.Remark = in.Remark
	if err := s.db.Save(&metric).Error; err != nil {
		return nil, translateErr(err)
	}
	return &metric, nil
}

// ListMetrics 按记录日期倒序返回指标序列，productID/metricID 传 0 表示不过滤。
func (s *Store) ListMetrics(productID, metricID uint, limit int) ([]models.ProductMetric, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.db.Model(&models.ProductMetric{}).Order("record_date DESC").Limit(limit)
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}
	if metricID != 0 {
		q = q.Where("metric_id = ?", metricID)
	}
	var metrics []models.ProductMetric
	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// SimulationResult 投资模拟的测算结果。
type SimulationResult struct {
	ProductID   uint    `json:"product_id"`
	Amount      float64 `json:"amount"`
	Days        int     `json:"days"`
	AnnualYield float64 `json:"annual_yield"`
	EstProfit   float64 `json:"est_profit"`
}

// SimulateReturn 用持仓的平均收益率估算持有收益。
// 产品没有持仓记录时按 3.5% 估，有持仓但收益率偏低时按 2% 保底。
func (s *Store) SimulateReturn(productID uint, amount float64, days int) (SimulationResult, error) {
	var result SimulationResult
	if err := util.ValidateAmount(amount); err != nil {
		return result, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if days <= 0 {
		return result, fmt.Errorf("%w: days must be positive", ErrValidation)
	}
	if _, err := s.GetProduct(productID); err != nil {
		return result, err
	}

	annualYield := 0.035
	var holding models.HoldingStatus
	if err := s.db.Where("product_id = ?", productID).First(&holding).Error; err == nil {
		annualYield = holding.AvgYield
		if annualYield < 0.02 {
			annualYield = 0.02
		}
	}

	result = SimulationResult{
		ProductID:   productID,
		Amount:      amount,
		Days:        days,
		AnnualYield: annualYield,
		EstProfit:   amount * annualYield * float64(days) / 365,
	}
	return result, nil
}
