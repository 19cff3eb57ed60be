package store

import (
	"testing"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvestmentBuyAutoLink(t *testing.T) {
	s := newTestStore(t)
	acc := mustAccount(t, s, "证券账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "货币基金A")

	log, err := s.CreateInvestment(InvestmentInput{
		Date:             day(t, "2024-02-01"),
		ProductID:        product.ID,
		ActionID:         buy.ID,
		Amount:           1000,
		ChannelAccountID: &acc.ID,
	}, true)
	require.NoError(t, err)
	require.NotNil(t, log.CashflowLinkID)

	// 联动现金流：买入生成支出，挂在"投资转出"分类下，双向互指
	var flow models.CashFlow
	require.NoError(t, s.db.First(&flow, *log.CashflowLinkID).Error)
	assert.Equal(t, models.FlowExpense, flow.FlowType)
	assert.Equal(t, 1000.0, flow.Amount)
	assert.Equal(t, acc.ID, flow.AccountID)
	require.NotNil(t, flow.LinkInvestmentID)
	assert.Equal(t, log.ID, *flow.LinkInvestmentID)
	assert.Equal(t, "理财操作：买入", flow.Remark)

	require.NotNil(t, flow.CategoryID)
	var cat models.DimCategory
	require.NoError(t, s.db.First(&cat, *flow.CategoryID).Error)
	assert.Equal(t, "投资转出", cat.Name)

	require.NotNil(t, flow.SourceTypeID)
	var src models.DimSourceType
	require.NoError(t, s.db.First(&src, *flow.SourceTypeID).Error)
	assert.Equal(t, "理财", src.Name)

	// 持仓同步重算
	var holding models.HoldingStatus
	require.NoError(t, s.db.Where("product_id = ?", product.ID).First(&holding).Error)
	assert.Equal(t, 1000.0, holding.TotalInvest)
	assert.Equal(t, -1000.0, holding.EstProfit)
}

func TestCreateInvestmentRedeemAutoLink(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	redeem := mustAction(t, s, "赎回")
	product := mustProduct(t, s, "债券B")

	log, err := s.CreateInvestment(InvestmentInput{
		Date:      day(t, "2024-02-10"),
		ProductID: product.ID,
		ActionID:  redeem.ID,
		Amount:    300,
	}, true)
	require.NoError(t, err)
	require.NotNil(t, log.CashflowLinkID)

	var flow models.CashFlow
	require.NoError(t, s.db.First(&flow, *log.CashflowLinkID).Error)
	assert.Equal(t, models.FlowIncome, flow.FlowType)

	var cat models.DimCategory
	require.NoError(t, s.db.First(&cat, *flow.CategoryID).Error)
	assert.Equal(t, "投资回流", cat.Name)
}

func TestCreateInvestmentWithoutLink(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "股票基金C")

	log, err := s.CreateInvestment(InvestmentInput{
		Date:      day(t, "2024-02-01"),
		ProductID: product.ID,
		ActionID:  buy.ID,
		Amount:    500,
	}, false)
	require.NoError(t, err)
	assert.Nil(t, log.CashflowLinkID)

	var count int64
	require.NoError(t, s.db.Model(&models.CashFlow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInvestmentUnknownActionSkipsLink(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	convert := mustAction(t, s, "转换")
	product := mustProduct(t, s, "货币基金A")

	log, err := s.CreateInvestment(InvestmentInput{
		Date:      day(t, "2024-02-01"),
		ProductID: product.ID,
		ActionID:  convert.ID,
		Amount:    500,
	}, true)
	require.NoError(t, err)
	assert.Nil(t, log.CashflowLinkID)

	var count int64
	require.NoError(t, s.db.Model(&models.CashFlow{}).Count(&count).Error)
	assert.Zero(t, count)

	// 认不出方向的操作不计入买入/赎回统计
	var holding models.HoldingStatus
	require.NoError(t, s.db.Where("product_id = ?", product.ID).First(&holding).Error)
	assert.Zero(t, holding.TotalInvest)
}

func TestAutoLinkCreatesDefaultAccount(t *testing.T) {
	s := newTestStore(t)
	buy := mustAction(t, s, "申购")
	product := mustProduct(t, s, "货币基金A")

	log, err := s.CreateInvestment(InvestmentInput{
		Date:      day(t, "2024-02-01"),
		ProductID: product.ID,
		ActionID:  buy.ID,
		Amount:    100,
	}, true)
	require.NoError(t, err)
	require.NotNil(t, log.CashflowLinkID)

	var acc models.DimAccount
	require.NoError(t, s.db.Order("id").First(&acc).Error)
	assert.Equal(t, "默认账户", acc.Name)
}

func TestRefreshHoldingsBuyAndRedeem(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	redeem := mustAction(t, s, "赎回")
	product := mustProduct(t, s, "货币基金A")

	_, err := s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-02-01"), ProductID: product.ID, ActionID: buy.ID, Amount: 1000,
	}, false)
	require.NoError(t, err)
	_, err = s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-03-01"), ProductID: product.ID, ActionID: redeem.ID, Amount: 300,
	}, false)
	require.NoError(t, err)

	var holding models.HoldingStatus
	require.NoError(t, s.db.Where("product_id = ?", product.ID).First(&holding).Error)
	assert.Equal(t, 700.0, holding.TotalInvest)
	assert.Equal(t, -700.0, holding.EstProfit)
	require.NotNil(t, holding.LastUpdate)
}

func TestSoftDeleteInvestmentRecomputesHoldings(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "货币基金A")

	log, err := s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-02-01"), ProductID: product.ID, ActionID: buy.ID, Amount: 1000,
	}, false)
	require.NoError(t, err)
	require.NoError(t, s.SoftDeleteInvestment(log.ID))

	logs, err := s.ListInvestments(false)
	require.NoError(t, err)
	assert.Empty(t, logs)

	var count int64
	require.NoError(t, s.db.Model(&models.HoldingStatus{}).Count(&count).Error)
	assert.Zero(t, count, "deleted investment should drop out of holdings")
}

func TestUpdateInvestmentKeepsLink(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "货币基金A")

	log, err := s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-02-01"), ProductID: product.ID, ActionID: buy.ID, Amount: 1000,
	}, true)
	require.NoError(t, err)
	require.NotNil(t, log.CashflowLinkID)

	// 普通编辑不传联动 id，不应断链
	updated, err := s.UpdateInvestment(log.ID, InvestmentInput{
		Date: day(t, "2024-02-02"), ProductID: product.ID, ActionID: buy.ID, Amount: 1200, Remark: "改记",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CashflowLinkID)
	assert.Equal(t, *log.CashflowLinkID, *updated.CashflowLinkID)
}

func TestReconciliationConsistentAfterAutoLink(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "货币基金A")

	_, err := s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-02-01"), ProductID: product.ID, ActionID: buy.ID, Amount: 1000,
	}, true)
	require.NoError(t, err)

	rows, err := s.Reconciliation()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-02", rows[0].Month)
	assert.Equal(t, 1000.0, rows[0].InvestOut)
	assert.Equal(t, 1000.0, rows[0].CashOut)
	assert.False(t, rows[0].Inconsistent)
}

func TestReconciliationDetectsMissingCashFlow(t *testing.T) {
	s := newTestStore(t)
	mustAccount(t, s, "现金账户")
	buy := mustAction(t, s, "买入")
	product := mustProduct(t, s, "货币基金A")

	_, err := s.CreateInvestment(InvestmentInput{
		Date: day(t, "2024-02-01"), ProductID: product.ID, ActionID: buy.ID, Amount: 1000,
	}, false)
	require.NoError(t, err)

	rows, err := s.Reconciliation()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Inconsistent)
	assert.Equal(t, 1000.0, rows[0].OutDiff)
}
