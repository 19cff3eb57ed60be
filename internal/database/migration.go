package database

import (
	"fmt"

	"github.com/gzxsprite-cmd/PFIS/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.DimAccount{},
		&models.DimCategory{},
		&models.DimSourceType{},
		&models.DimActionType{},
		&models.DimProductType{},
		&models.DimRiskLevel{},
		&models.DimMetric{},
		&models.DimInvestmentTerm{},
		&models.ProductMaster{},
		&models.HoldingStatus{},
		&models.CashFlow{},
		&models.InvestmentLog{},
		&models.ProductMetric{},
		&models.OcrPending{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
