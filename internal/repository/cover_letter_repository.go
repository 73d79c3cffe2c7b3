package repository

import (
	"ai_interview_backend/internal/model"

	"gorm.io/gorm"
)

type CoverLetterRepository struct {
	DB *gorm.DB
}

func NewCoverLetterRepository(db *gorm.DB) *CoverLetterRepository {
	return &CoverLetterRepository{DB: db}
}

func (r *CoverLetterRepository) Create(letter *model.CoverLetter) error {
	return r.DB.Create(letter).Error
}

func (r *CoverLetterRepository) FindByIDForUser(id, userID uint) (*model.CoverLetter, error) {
	var letter model.CoverLetter
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&letter).Error
	return &letter, err
}

func (r *CoverLetterRepository) ListByUser(userID uint) ([]model.CoverLetter, error) {
	var letters []model.CoverLetter
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&letters).Error
	return letters, err
}

func (r *CoverLetterRepository) Update(letter *model.CoverLetter) error {
	return r.DB.Save(letter).Error
}

// Delete soft-deletes the letter only. Interview sessions referencing it are
// left untouched.
func (r *CoverLetterRepository) Delete(letter *model.CoverLetter) error {
	return r.DB.Delete(letter).Error
}
