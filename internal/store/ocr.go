package store

import (
	"fmt"

	"github.com/gzxsprite-cmd/PFIS/internal/models"
)

// ListOcrPending 按上传时间倒序返回待处理凭证。
func (s *Store) ListOcrPending() ([]models.OcrPending, error) {
	var items []models.OcrPending
	if err := s.db.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddOcrPending 登记一条待识别的上传凭证。识别由外部流程完成，这里只入队。
func (s *Store) AddOcrPending(module, imagePath, remark string) (*models.OcrPending, error) {
	if module == "" || imagePath == "" {
		return nil, fmt.Errorf("%w: module and image path are required", ErrValidation)
	}
	item := models.OcrPending{
		Module:    module,
		ImagePath: imagePath,
		Status:    models.OcrStatusPending,
		Remark:    remark,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

// SetOcrStatus 更新凭证处理状态。
func (s *Store) SetOcrStatus(id uint, status string) error {
	switch status {
	case models.OcrStatusPending, models.OcrStatusProcessed, models.OcrStatusDiscarded:
	default:
		return fmt.Errorf("%w: bad status %q", ErrValidation, status)
	}
	var item models.OcrPending
	if err := s.db.First(&item, id).Error; err != nil {
		return translateErr(err)
	}
	return s.db.Model(&item).Update("status", status).Error
}
