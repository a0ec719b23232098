package repository

import (
	"fmt"

	"gorm.io/gorm"

	"instructo-gateway/internal/model"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("create submission failed: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) ListByUserID(userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("list submissions failed: %w", err)
	}
	return submissions, nil
}
