package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// JobPostingAnalyzer is satisfied by *AIService.
type JobPostingAnalyzer interface {
	AnalyzeJobPosting(ctx context.Context, text string) (*model.JobAnalysis, error)
}

// TextExtractor is satisfied by *PDFService.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// JobPostingStore is satisfied by *repository.JobPostingRepository.
type JobPostingStore interface {
	Create(posting *model.JobPosting) error
	FindByIDForUser(id, userID uint) (*model.JobPosting, error)
	ListByUser(userID uint) ([]model.JobPosting, error)
	Delete(posting *model.JobPosting) error
}

type JobPostingService struct {
	store     JobPostingStore
	extractor TextExtractor
	analyzer  JobPostingAnalyzer
}

func NewJobPostingService(store JobPostingStore, extractor TextExtractor, analyzer JobPostingAnalyzer) *JobPostingService {
	return &JobPostingService{
		store:     store,
		extractor: extractor,
		analyzer:  analyzer,
	}
}

// CreateFromUpload extracts the posting text from an uploaded PDF, runs the
// AI analysis and persists the result. The stored analysis is immutable
// afterwards.
func (s *JobPostingService) CreateFromUpload(ctx context.Context, userID uint, filename string, data []byte) (*model.JobPosting, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.AnalyzeJobPosting(ctx, text)
	if err != nil {
		return nil, err
	}

	posting := &model.JobPosting{
		UserID:       userID,
		Title:        strings.TrimSuffix(filename, ".pdf"),
		OriginalText: text,
		Analysis:     analysis,
	}

	if err := s.store.Create(posting); err != nil {
		return nil, err
	}
	return posting, nil
}

func (s *JobPostingService) List(userID uint) ([]model.JobPosting, error) {
	return s.store.ListByUser(userID)
}

func (s *JobPostingService) Get(id, userID uint) (*model.JobPosting, error) {
	posting, err := s.store.FindByIDForUser(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrJobPostingNotFound
	}
	return posting, err
}

func (s *JobPostingService) Delete(id, userID uint) error {
	posting, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.store.Delete(posting)
}
