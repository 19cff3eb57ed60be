package store

import (
	"fmt"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
	"github.com/gzxsprite-cmd/PFIS/internal/util"
)

// CashFlowInput 现金流的可写字段。方向写法在入口归一成 income/expense。
type CashFlowInput struct {
	Date             time.Time
	AccountID        uint
	CategoryID       *uint
	FlowType         string
	Amount           float64
	SourceTypeID     *uint
	Remark           string
	LinkInvestmentID *uint
}

func (in *CashFlowInput) validate() error {
	if in.AccountID == 0 {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if _, ok := models.NormalizeFlowType(in.FlowType); !ok {
		return fmt.Errorf("%w: unknown flow type %q", ErrValidation, in.FlowType)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	return nil
}

// ListCashFlows 按日期倒序返回现金流，默认排除已作废行。
func (s *Store) ListCashFlows(includeInactive bool) ([]models.CashFlow, error) {
	q := s.db.Model(&models.CashFlow{}).Order("date DESC, id DESC")
	if !includeInactive {
		q = activeScope(q)
	}
	var flows []models.CashFlow
	if err := q.Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

func (s *Store) GetCashFlow(id uint) (*models.CashFlow, error) {
	var flow models.CashFlow
	if err := s.db.First(&flow, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &flow, nil
}

func (s *Store) CreateCashFlow(in CashFlowInput) (*models.CashFlow, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	flowType, _ := models.NormalizeFlowType(in.FlowType)
	flow := models.CashFlow{
		Date:             in.Date,
		AccountID:        in.AccountID,
		CategoryID:       in.CategoryID,
		FlowType:         flowType,
		Amount:           in.Amount,
		SourceTypeID:     in.SourceTypeID,
		Remark:           in.Remark,
		Status:           models.StatusActive,
		LinkInvestmentID: in.LinkInvestmentID,
	}
	if err := s.db.Create(&flow).Error; err != nil {
		return nil, translateErr(err)
	}
	s.touchAccount(flow.AccountID)
	return &flow, nil
}

// UpdateCashFlow 整行覆盖可变字段，不动 status。
func (s *Store) UpdateCashFlow(id uint, in CashFlowInput) (*models.CashFlow, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	flow, err := s.GetCashFlow(id)
	if err != nil {
		return nil, err
	}
	flowType, _ := models.NormalizeFlowType(in.FlowType)
	flow.Date = in.Date
	flow.AccountID = in.AccountID
	flow.CategoryID = in.CategoryID
	flow.FlowType = flowType
	flow.Amount = in.Amount
	flow.SourceTypeID = in.SourceTypeID
	flow.Remark = in.Remark
	flow.LinkInvestmentID = in.LinkInvestmentID
	if err := s.db.Save(flow).Error; err != nil {
		return nil, translateErr(err)
	}
	return flow, nil
}

// SoftDeleteCashFlow 置为 inactive，不级联联动的理财记录。
func (s *Store) SoftDeleteCashFlow(id uint) error {
	flow, err := s.GetCashFlow(id)
	if err != nil {
		return err
	}
	return s.db.Model(flow).Update("status", models.StatusInactive).Error
}
