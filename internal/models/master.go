package models

import "time"

// 主数据状态：active / inactive。历史数据里 status 可能为 NULL 或空串，按 active 处理。
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DimAccount 资金账户（现金、银行卡、证券账户等）
type DimAccount struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Status    string     `gorm:"size:16;default:active" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

func (DimAccount) TableName() string { return "dim_account" }

// DimCategory 收支分类，支持 parent_id 构成层级
type DimCategory struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:64;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	Status   string `gorm:"size:16;default:active" json:"status"`
}

func (DimCategory) TableName() string { return "dim_category" }

// DimSourceType 资金来源类型（工资、理财、其他）
type DimSourceType struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Status string `gorm:"size:16;default:active" json:"status"`
}

func (DimSourceType) TableName() string { return "dim_source_type" }

// DimActionType 理财操作类型（买入、赎回、分红等）
type DimActionType struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Status string `gorm:"size:16;default:active" json:"status"`
}

func (DimActionType) TableName() string { return "dim_action_type" }

// DimProductType 产品类型（货币基金、股票基金、债券等）
type DimProductType struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Status string `gorm:"size:16;default:active" json:"status"`
}

func (DimProductType) TableName() string { return "dim_product_type" }

// DimRiskLevel 风险等级
type DimRiskLevel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Status      string `gorm:"size:16;default:active" json:"status"`
}

func (DimRiskLevel) TableName() string { return "dim_risk_level" }

// DimMetric 产品指标定义（净值、收益率、波动率等）
type DimMetric struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Unit        string `gorm:"size:32" json:"unit,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Status      string `gorm:"size:16;default:active" json:"status"`
}

func (DimMetric) TableName() string { return "dim_metric" }

// DimInvestmentTerm 投资期限（T+1、T+7、30天…）
type DimInvestmentTerm struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Status string `gorm:"size:16;default:active" json:"status"`
}

func (DimInvestmentTerm) TableName() string { return "dim_investment_term" }
