package models

import "time"

// CashFlow 现金流流水。amount 始终存正数，方向由 flow_type 表达。
// link_investment_id 指向生成这条现金流的理财操作（可空，双向各存一份）。
type CashFlow struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             time.Time `gorm:"index;not null" json:"date"`
	AccountID        uint      `gorm:"index;not null" json:"account_id"`
	CategoryID       *uint     `gorm:"index" json:"category_id,omitempty"`
	FlowType         string    `gorm:"size:16;index;not null" json:"flow_type"`
	Amount           float64   `gorm:"not null" json:"amount"`
	SourceTypeID     *uint     `gorm:"index" json:"source_type_id,omitempty"`
	Remark           string    `gorm:"size:255" json:"remark,omitempty"`
	Status           string    `gorm:"size:16;default:active" json:"status"`
	LinkInvestmentID *uint     `gorm:"index" json:"link_investment_id,omitempty"`

	Account    DimAccount     `gorm:"foreignKey:AccountID" json:"-"`
	Category   *DimCategory   `gorm:"foreignKey:CategoryID" json:"-"`
	SourceType *DimSourceType `gorm:"foreignKey:SourceTypeID" json:"-"`
}

func (CashFlow) TableName() string { return "cash_flow" }

// InvestmentLog 理财操作流水（买入/赎回/分红）。
// cashflow_link_id 指向联动生成的现金流（可空）。
type InvestmentLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             time.Time `gorm:"index;not null" json:"date"`
	ProductID        uint      `gorm:"index;not null" json:"product_id"`
	ActionID         uint      `gorm:"index;not null" json:"action_id"`
	Amount           float64   `gorm:"not null" json:"amount"`
	ChannelAccountID *uint     `gorm:"index" json:"channel_account_id,omitempty"`
	Remark           string    `gorm:"type:text" json:"remark,omitempty"`
	Status           string    `gorm:"size:16;default:active" json:"status"`
	CashflowLinkID   *uint     `gorm:"index" json:"cashflow_link_id,omitempty"`

	Product        ProductMaster `gorm:"foreignKey:ProductID" json:"-"`
	Action         DimActionType `gorm:"foreignKey:ActionID" json:"-"`
	ChannelAccount *DimAccount   `gorm:"foreignKey:ChannelAccountID" json:"-"`
}

func (InvestmentLog) TableName() string { return "investment_log" }
