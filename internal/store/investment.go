package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 联动生成现金流时使用的固定主数据名称
const (
	categoryInvestOut = "投资转出"
	categoryInvestIn  = "投资回流"
	sourceInvestment  = "理财"
	defaultAccount    = "默认账户"
)

// InvestmentInput 理财流水的可写字段。
type InvestmentInput struct {
	Date             time.Time
	ProductID        uint
	ActionID         uint
	Amount           float64
	ChannelAccountID *uint
	Remark           string
	CashflowLinkID   *uint
}

func (in *InvestmentInput) validate() error {
	if in.ProductID == 0 {
		return fmt.Errorf("%w: product is required", ErrValidation)
	}
	if in.ActionID == 0 {
		return fmt.Errorf("%w: action is required", ErrValidation)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	return nil
}

// ListInvestments 按日期倒序返回理财流水，默认排除已作废行。
func (s *Store) ListInvestments(includeInactive bool) ([]models.InvestmentLog, error) {
	q := s.db.Model(&models.InvestmentLog{}).Order("date DESC, id DESC")
	if !includeInactive {
		q = activeScope(q)
	}
	var logs []models.InvestmentLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) GetInvestment(id uint) (*models.InvestmentLog, error) {
	var log models.InvestmentLog
	if err := s.db.First(&log, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &log, nil
}

// CreateInvestment 记录一笔理财操作。linkCashflow 为真时按操作类型
// 自动生成配套现金流并互写关联 id，之后全量重算持仓。
func (s *Store) CreateInvestment(in InvestmentInput, linkCashflow bool) (*models.InvestmentLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	log := models.InvestmentLog{
		Date:             in.Date,
		ProductID:        in.ProductID,
		ActionID:         in.ActionID,
		Amount:           in.Amount,
		ChannelAccountID: in.ChannelAccountID,
		Remark:           in.Remark,
		Status:           models.StatusActive,
		CashflowLinkID:   in.CashflowLinkID,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, translateErr(err)
	}

	if linkCashflow {
		if err := s.autoLinkCashFlow(&log); err != nil {
			// 联动失败不回滚理财记录本身，留给对账报表暴露
			s.log.Warn("auto link cash flow failed",
				zap.Uint("investment_id", log.ID), zap.Error(err))
		}
	}

	if err := s.RefreshHoldings(); err != nil {
		return nil, err
	}
	return &log, nil
}

// autoLinkCashFlow 按操作类型名称分类：买入类生成支出，赎回/分红类生成收入，
// 认不出方向就什么都不做。现金流先落库，再把它的 id 写回理财记录——
// 两步写入不在同一事务里，中途崩溃会留下单向关联，由对账报表检出。
func (s *Store) autoLinkCashFlow(log *models.InvestmentLog) error {
	var action models.DimActionType
	if err := s.db.First(&action, log.ActionID).Error; err != nil {
		return translateErr(err)
	}

	var flowType, categoryName string
	switch models.ClassifyAction(action.Name) {
	case models.ActionBuy:
		flowType = models.FlowExpense
		categoryName = categoryInvestOut
	case models.ActionRedeem:
		flowType = models.FlowIncome
		categoryName = categoryInvestIn
	default:
		return nil
	}

	categoryID, err := s.ensureCategory(categoryName)
	if err != nil {
		return err
	}
	sourceID, err := s.ensureSourceType(sourceInvestment)
	if err != nil {
		return err
	}
	accountID, err := s.resolveChannelAccount(log.ChannelAccountID)
	if err != nil {
		return err
	}

	flow := models.CashFlow{
		Date:             log.Date,
		AccountID:        accountID,
		CategoryID:       &categoryID,
		FlowType:         flowType,
		Amount:           log.Amount,
		SourceTypeID:     &sourceID,
		Remark:           "理财操作：" + action.Name,
		Status:           models.StatusActive,
		LinkInvestmentID: &log.ID,
	}
	if err := s.db.Create(&flow).Error; err != nil {
		return translateErr(err)
	}

	if err := s.db.Model(log).Update("cashflow_link_id", flow.ID).Error; err != nil {
		return err
	}
	log.CashflowLinkID = &flow.ID
	return nil
}

func (s *Store) ensureCategory(name string) (uint, error) {
	var cat models.DimCategory
	err := s.db.Where("name = ?", name).Order("id").First(&cat).Error
	if err == nil {
		return cat.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	cat = models.DimCategory{Name: name, Status: models.StatusActive}
	if err := s.db.Create(&cat).Error; err != nil {
		return 0, translateErr(err)
	}
	return cat.ID, nil
}

func (s *Store) ensureSourceType(name string) (uint, error) {
	var src models.DimSourceType
	err := s.db.Where("name = ?", name).First(&src).Error
	if err == nil {
		return src.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	src = models.DimSourceType{Name: name, Status: models.StatusActive}
	if err := s.db.Create(&src).Error; err != nil {
		return 0, translateErr(err)
	}
	return src.ID, nil
}

// resolveChannelAccount 优先用渠道账户，没有就取 id 最小的账户，
// 连账户都没有时创建默认账户。
func (s *Store) resolveChannelAccount(channelID *uint) (uint, error) {
	if channelID != nil && *channelID != 0 {
		return *channelID, nil
	}
	var acc models.DimAccount
	err := s.db.Order("id").First(&acc).Error
	if err == nil {
		return acc.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	acc = models.DimAccount{Name: defaultAccount, Status: models.StatusActive}
	if err := s.db.Create(&acc).Error; err != nil {
		return 0, translateErr(err)
	}
	return acc.ID, nil
}

// UpdateInvestment 整行覆盖可变字段，不动 status，随后重算持仓。
// 入参不带 CashflowLinkID 时保留已有联动关系，普通编辑不会断链。
func (s *Store) UpdateInvestment(id uint, in InvestmentInput) (*models.InvestmentLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	log, err := s.GetInvestment(id)
	if err != nil {
		return nil, err
	}
	log.Date = in.Date
	log.ProductID = in.ProductID
	log.ActionID = in.ActionID
	log.Amount = in.Amount
	log.ChannelAccountID = in.ChannelAccountID
	log.Remark = in.Remark
	if in.CashflowLinkID != nil {
		log.CashflowLinkID = in.CashflowLinkID
	}
	if err := s.db.Save(log).Error; err != nil {
		return nil, translateErr(err)
	}
	if err := s.RefreshHoldings(); err != nil {
		return nil, err
	}
	return log, nil
}

// SoftDeleteInvestment 置为 inactive，不级联已联动的现金流，随后重算持仓。
func (s *Store) SoftDeleteInvestment(id uint) error {
	log, err := s.GetInvestment(id)
	if err != nil {
		return err
	}
	if err := s.db.Model(log).Update("status", models.StatusInactive).Error; err != nil {
		return err
	}
	return s.RefreshHoldings()
}

// investmentRow 持仓重算和对账共用的查询行。
type investmentRow struct {
	ProductID  uint
	Date       time.Time
	Amount     float64
	ActionName string
}

func (s *Store) activeInvestmentRows() ([]investmentRow, error) {
	var rows []investmentRow
	err := s.db.Model(&models.InvestmentLog{}).
		Select("investment_log.product_id, investment_log.date, investment_log.amount, dim_action_type.name AS action_name").
		Joins("JOIN dim_action_type ON dim_action_type.id = investment_log.action_id").
		Where("investment_log.status = ? OR investment_log.status IS NULL OR investment_log.status = ''",
			models.StatusActive).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RefreshHoldings 全量重算每个产品的持仓快照。数据量小，整表重建
// 比增量维护可靠，不会积累漂移。
func (s *Store) RefreshHoldings() error {
	rows, err := s.activeInvestmentRows()
	if err != nil {
		return err
	}

	type tally struct{ buy, redeem float64 }
	byProduct := make(map[uint]*tally)
	for _, row := range rows {
		t := byProduct[row.ProductID]
		if t == nil {
			t = &tally{}
			byProduct[row.ProductID] = t
		}
		switch models.ClassifyAction(row.ActionName) {
		case models.ActionBuy:
			t.buy += row.Amount
		case models.ActionRedeem:
			t.redeem += row.Amount
		}
	}

	today := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.HoldingStatus{}).Error; err != nil {
			return err
		}
		for productID, t := range byProduct {
			holding := models.HoldingStatus{
				ProductID:   productID,
				TotalInvest: t.buy - t.redeem,
				EstProfit:   t.redeem - t.buy,
				AvgYield:    0,
				LastUpdate:  &today,
			}
			if err := tx.Create(&holding).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReconciliationRow 单月的理财流水与联动现金流对照。
type ReconciliationRow struct {
	Month        string  `json:"month"`
	InvestOut    float64 `json:"invest_out"`
	InvestIn     float64 `json:"invest_in"`
	CashOut      float64 `json:"cash_out"`
	CashIn       float64 `json:"cash_in"`
	OutDiff      float64 `json:"out_diff"`
	InDiff       float64 `json:"in_diff"`
	Inconsistent bool    `json:"inconsistent"`
}

// Reconciliation 逐月比较理财买入/赎回总额与联动现金流的支出/收入总额。
// 只读诊断，差值超过 0.01 视为不一致，不做任何自动修正。
func (s *Store) Reconciliation() ([]ReconciliationRow, error) {
	invRows, err := s.activeInvestmentRows()
	if err != nil {
		return nil, err
	}

	type pair struct{ out, in float64 }
	invest := make(map[string]*pair)
	for _, row := range invRows {
		month := row.Date.Format("2006-01")
		p := invest[month]
		if p == nil {
			p = &pair{}
			invest[month] = p
		}
		switch models.ClassifyAction(row.ActionName) {
		case models.ActionBuy:
			p.out += row.Amount
		case models.ActionRedeem:
			p.in += row.Amount
		}
	}

	var flows []models.CashFlow
	if err := activeScope(s.db.Model(&models.CashFlow{})).
		Where("link_investment_id IS NOT NULL").
		Find(&flows).Error; err != nil {
		return nil, err
	}
	cash := make(map[string]*pair)
	for _, flow := range flows {
		month := flow.Date.Format("2006-01")
		p := cash[month]
		if p == nil {
			p = &pair{}
			cash[month] = p
		}
		if models.IsExpenseType(flow.FlowType) {
			p.out += flow.Amount
		} else if models.IsIncomeType(flow.FlowType) {
			p.in += flow.Amount
		}
	}

	months := make(map[string]struct{})
	for m := range invest {
		months[m] = struct{}{}
	}
	for m := range cash {
		months[m] = struct{}{}
	}
	ordered := make([]string, 0, len(months))
	for m := range months {
		ordered = append(ordered, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ordered)))

	rows := make([]ReconciliationRow, 0, len(ordered))
	for _, month := range ordered {
		iv, cf := pair{}, pair{}
		if p := invest[month]; p != nil {
			iv = *p
		}
		if p := cash[month]; p != nil {
			cf = *p
		}
		row := ReconciliationRow{
			Month:     month,
			InvestOut: iv.out,
			InvestIn:  iv.in,
			CashOut:   cf.out,
			CashIn:    cf.in,
			OutDiff:   iv.out - cf.out,
			InDiff:    iv.in - cf.in,
		}
		row.Inconsistent = util.AmountsDiffer(iv.out, cf.out) || util.AmountsDiffer(iv.in, cf.in)
		rows = append(rows, row)
	}
	return rows, nil
}
