package repository

import (
	"ai_interview_backend/internal/model"

	"gorm.io/gorm"
)

type JobPostingRepository struct {
	DB *gorm.DB
}

func NewJobPostingRepository(db *gorm.DB) *JobPostingRepository {
	return &JobPostingRepository{DB: db}
}

func (r *JobPostingRepository) Create(posting *model.JobPosting) error {
	return r.DB.Create(posting).Error
}

func (r *JobPostingRepository) FindByIDForUser(id, userID uint) (*model.JobPosting, error) {
	var posting model.JobPosting
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&posting).Error
	return &posting, err
}

func (r *JobPostingRepository) ListByUser(userID uint) ([]model.JobPosting, error) {
	var postings []model.JobPosting
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&postings).Error
	return postings, err
}

func (r *JobPostingRepository) Delete(posting *model.JobPosting) error {
	return r.DB.Delete(posting).Error
}
