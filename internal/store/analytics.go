package store

import (
	"sort"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
)

// Summary 总体收支概览。
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpense  float64 `json:"total_expense"`
	TotalInvested float64 `json:"total_invested"`
	NetCash       float64 `json:"net_cash"`
}

// MonthlyPoint 月度收支序列中的一个点。
type MonthlyPoint struct {
	Month             string  `json:"month"`
	Income            float64 `json:"income"`
	Expense           float64 `json:"expense"`
	Investment        float64 `json:"investment"`
	InvestmentRatio   float64 `json:"investment_ratio"`
	NetCash           float64 `json:"net_cash"`
	CumulativeNetCash float64 `json:"cumulative_net_cash"`
}

// AnalyticsSummary 汇总有效现金流和理财投入。
// flow_type 按历史出现过的全部写法匹配，net = income - expense。
func (s *Store) AnalyticsSummary() (Summary, error) {
	var summary Summary

	var flows []models.CashFlow
	if err := activeScope(s.db.Model(&models.CashFlow{})).Find(&flows).Error; err != nil {
		return summary, err
	}
	for _, flow := range flows {
		switch {
		case models.IsIncomeType(flow.FlowType):
			summary.TotalIncome += flow.Amount
		case models.IsExpenseType(flow.FlowType):
			summary.TotalExpense += flow.Amount
		}
	}

	var invested float64
	if err := activeScope(s.db.Model(&models.InvestmentLog{})).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&invested).Error; err != nil {
		return summary, err
	}
	summary.TotalInvested = invested
	summary.NetCash = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// MonthlyCashflow 产出逐月收支序列：月份取收入、支出、买入类投资三个
// 序列的并集，升序排列。累计净现金必须沿升序单次累加，
// 乱序或逐行独立重算都会得到错误结果。
func (s *Store) MonthlyCashflow() ([]MonthlyPoint, error) {
	incomeByMonth := map[string]float64{}
	expenseByMonth := map[string]float64{}
	investByMonth := map[string]float64{}

	var flows []models.CashFlow
	if err := activeScope(s.db.Model(&models.CashFlow{})).Find(&flows).Error; err != nil {
		return nil, err
	}
	for _, flow := range flows {
		month := flow.Date.Format("2006-01")
		switch {
		case models.IsIncomeType(flow.FlowType):
			incomeByMonth[month] += flow.Amount
		case models.IsExpenseType(flow.FlowType):
			expenseByMonth[month] += flow.Amount
		}
	}

	invRows, err := s.activeInvestmentRows()
	if err != nil {
		return nil, err
	}
	for _, row := range invRows {
		// 只有买入类操作计入投资序列，且只累加正数金额
		if models.ClassifyAction(row.ActionName) != models.ActionBuy || row.Amount <= 0 {
			continue
		}
		investByMonth[row.Date.Format("2006-01")] += row.Amount
	}

	months := map[string]struct{}{}
	for m := range incomeByMonth {
		months[m] = struct{}{}
	}
	for m := range expenseByMonth {
		months[m] = struct{}{}
	}
	for m := range investByMonth {
		months[m] = struct{}{}
	}
	ordered := make([]string, 0, len(months))
	for m := range months {
		ordered = append(ordered, m)
	}
	sort.Strings(ordered)

	points := make([]MonthlyPoint, 0, len(ordered))
	var runningNet float64
	for _, month := range ordered {
		income := incomeByMonth[month]
		expense := expenseByMonth[month]
		invested := investByMonth[month]
		ratio := 0.0
		if income > 0 {
			ratio = invested / income
		}
		netCash := income - expense
		runningNet += netCash
		points = append(points, MonthlyPoint{
			Month:             month,
			Income:            income,
			Expense:           expense,
			Investment:        invested,
			InvestmentRatio:   ratio,
			NetCash:           netCash,
			CumulativeNetCash: runningNet,
		})
	}
	return points, nil
}

// HoldingView 带产品名的持仓快照，供组合视图展示。
type HoldingView struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	TotalInvest float64 `json:"total_invest"`
	EstProfit   float64 `json:"est_profit"`
	AvgYield    float64 `json:"avg_yield"`
	LastUpdate  string  `json:"last_update,omitempty"`
}

// ListHoldings 返回全部持仓快照，按累计投入倒序。
func (s *Store) ListHoldings() ([]HoldingView, error) {
	var holdings []models.HoldingStatus
	if err := s.db.Order("total_invest DESC").Find(&holdings).Error; err != nil {
		return nil, err
	}

	views := make([]HoldingView, 0, len(holdings))
	for _, h := range holdings {
		var product models.ProductMaster
		name := ""
		if err := s.db.Select("name").First(&product, h.ProductID).Error; err == nil {
			name = product.Name
		}
		view := HoldingView{
			ProductID:   h.ProductID,
			ProductName: name,
			TotalInvest: h.TotalInvest,
			EstProfit:   h.EstProfit,
			AvgYield:    h.AvgYield,
		}
		if h.LastUpdate != nil {
			view.LastUpdate = h.LastUpdate.Format("2006-01-02")
		}
		views = append(views, view)
	}
	return views, nil
}
