package models

import "time"

// ProductMaster 理财产品主档
type ProductMaster struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"size:128;uniqueIndex;not null" json:"name"`
	TypeID           *uint      `gorm:"index" json:"type_id,omitempty"`
	RiskLevelID      *uint      `gorm:"index" json:"risk_level_id,omitempty"`
	InvestmentTermID *uint      `gorm:"index" json:"investment_term_id,omitempty"`
	LaunchDate       *time.Time `json:"launch_date,omitempty"`
	Remark           string     `gorm:"type:text" json:"remark,omitempty"`
	Status           string     `gorm:"size:16;default:active" json:"status"`

	ProductType    *DimProductType    `gorm:"foreignKey:TypeID" json:"-"`
	RiskLevel      *DimRiskLevel      `gorm:"foreignKey:RiskLevelID" json:"-"`
	InvestmentTerm *DimInvestmentTerm `gorm:"foreignKey:InvestmentTermID" json:"-"`
}

func (ProductMaster) TableName() string { return "product_master" }

// ProductMetric 产品指标时间序列。(product_id, metric_id, record_date) 唯一。
type ProductMetric struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:uq_product_metric_date" json:"product_id"`
	MetricID   uint      `gorm:"not null;uniqueIndex:uq_product_metric_date" json:"metric_id"`
	RecordDate time.Time `gorm:"not null;uniqueIndex:uq_product_metric_date" json:"record_date"`
	Value      float64   `gorm:"not null" json:"value"`
	Source     string    `gorm:"size:64" json:"source,omitempty"`
	Remark     string    `gorm:"type:text" json:"remark,omitempty"`

	Product ProductMaster `gorm:"foreignKey:ProductID" json:"-"`
	Metric  DimMetric     `gorm:"foreignKey:MetricID" json:"-"`
}

func (ProductMetric) TableName() string { return "product_metrics" }

// HoldingStatus 持仓快照，由理财流水全量重算得出，只是聚合缓存，不是事实来源。
type HoldingStatus struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProductID   uint       `gorm:"uniqueIndex;not null" json:"product_id"`
	TotalInvest float64    `gorm:"default:0" json:"total_invest"`
	EstProfit   float64    `gorm:"default:0" json:"est_profit"`
	AvgYield    float64    `gorm:"default:0" json:"avg_yield"`
	LastUpdate  *time.Time `json:"last_update,omitempty"`
}

func (HoldingStatus) TableName() string { return "holding_status" }

// OCR 待处理状态
const (
	OcrStatusPending   = "pending"
	OcrStatusProcessed = "processed"
	OcrStatusDiscarded = "discarded"
)

// OcrPending 上传凭证队列，OCR 识别本身由外部流程完成。
type OcrPending struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Module    string    `gorm:"size:32;not null" json:"module"`
	ImagePath string    `gorm:"size:255;not null" json:"image_path"`
	Status    string    `gorm:"size:16;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Remark    string    `gorm:"type:text" json:"remark,omitempty"`
}

func (OcrPending) TableName() string { return "ocr_pending" }
