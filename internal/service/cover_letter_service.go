package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

// CoverLetterStore is satisfied by *repository.CoverLetterRepository.
type CoverLetterStore interface {
	Create(letter *model.CoverLetter) error
	FindByIDForUser(id, userID uint) (*model.CoverLetter, error)
	ListByUser(userID uint) ([]model.CoverLetter, error)
	Update(letter *model.CoverLetter) error
	Delete(letter *model.CoverLetter) error
}

// CoverLetterReviewer is satisfied by *AIService.
type CoverLetterReviewer interface {
	GenerateCoverLetterFeedback(ctx context.Context, userSpec string, analysis *model.JobAnalysis, coverLetter string) (string, error)
}

type CoverLetterService struct {
	store    CoverLetterStore
	postings JobPostingStore
	reviewer CoverLetterReviewer
}

func NewCoverLetterService(store CoverLetterStore, postings JobPostingStore, reviewer CoverLetterReviewer) *CoverLetterService {
	return &CoverLetterService{
		store:    store,
		postings: postings,
		reviewer: reviewer,
	}
}

// Create persists the letter and, when a job posting is linked, attaches AI
// feedback in the same request. A feedback failure after the letter was
// stored is surfaced as-is; the letter itself is not rolled back.
func (s *CoverLetterService) Create(ctx context.Context, user *model.User, content string, jobPostingID *uint) (*model.CoverLetter, error) {
	var posting *model.JobPosting
	if jobPostingID != nil {
		var err error
		posting, err = s.postings.FindByIDForUser(*jobPostingID, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJobPostingNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	letter := &model.CoverLetter{
		UserID:       user.ID,
		JobPostingID: jobPostingID,
		Content:      content,
	}
	if err := s.store.Create(letter); err != nil {
		return nil, err
	}

	if posting != nil && posting.Analysis != nil {
		feedback, err := s.reviewer.GenerateCoverLetterFeedback(ctx, BuildUserSpec(user), posting.Analysis, content)
		if err != nil {
			return nil, err
		}
		letter.AIFeedback = feedback
		if err := s.store.Update(letter); err != nil {
			return nil, err
		}
	}

	return letter, nil
}

func (s *CoverLetterService) List(userID uint) ([]model.CoverLetter, error) {
	return s.store.ListByUser(userID)
}

func (s *CoverLetterService) Get(id, userID uint) (*model.CoverLetter, error) {
	letter, err := s.store.FindByIDForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCoverLetterNotFound
	}
	return letter, err
}

func (s *CoverLetterService) Update(id, userID uint, content *string) (*model.CoverLetter, error) {
	letter, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if content != nil {
		letter.Content = *content
	}

	if err := s.store.Update(letter); err != nil {
		return nil, err
	}
	return letter, nil
}

// Delete removes the letter. Interview sessions referencing it survive.
func (s *CoverLetterService) Delete(id, userID uint) error {
	letter, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.store.Delete(letter)
}
