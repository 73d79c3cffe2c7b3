package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(data []byte) (string, error) {
	return s.text, s.err
}

type stubAnalyzer struct {
	mu       sync.Mutex
	analysis *model.JobAnalysis
	err      error
	calls    int
}

func (s *stubAnalyzer) AnalyzeJobPosting(ctx context.Context, text string) (*model.JobAnalysis, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.analysis, s.err
}

func TestCreateFromUpload(t *testing.T) {
	store := newFakePostingStore()
	analyzer := &stubAnalyzer{analysis: &model.JobAnalysis{
		Keywords:     []string{"Go"},
		Requirements: []string{"3년 이상"},
	}}
	svc := NewJobPostingService(store, &stubExtractor{text: "백엔드 엔지니어 모집"}, analyzer)

	posting, err := svc.CreateFromUpload(context.Background(), 7, "backend-engineer.pdf", []byte("%PDF-"))
	require.NoError(t, err)

	assert.Equal(t, "backend-engineer", posting.Title)
	assert.Equal(t, "백엔드 엔지니어 모집", posting.OriginalText)
	require.NotNil(t, posting.Analysis)
	assert.Equal(t, []string{"Go"}, posting.Analysis.Keywords)

	stored, err := store.FindByIDForUser(posting.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, posting.Title, stored.Title)
}

func TestCreateFromUploadEmptyDocument(t *testing.T) {
	store := newFakePostingStore()
	analyzer := &stubAnalyzer{}
	svc := NewJobPostingService(store, &stubExtractor{err: util.ErrEmptyDocumentText}, analyzer)

	_, err := svc.CreateFromUpload(context.Background(), 7, "empty.pdf", []byte("%PDF-"))
	assert.ErrorIs(t, err, util.ErrEmptyDocumentText)
	assert.Zero(t, analyzer.calls)
	assert.Empty(t, store.postings)
}

func TestJobPostingGetScopedToOwner(t *testing.T) {
	store := newFakePostingStore()
	svc := NewJobPostingService(store, &stubExtractor{}, &stubAnalyzer{})

	posting := &model.JobPosting{UserID: 7, Title: "mine"}
	require.NoError(t, store.Create(posting))

	got, err := svc.Get(posting.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)

	_, err = svc.Get(posting.ID, 8)
	assert.ErrorIs(t, err, util.ErrJobPostingNotFound)

	err = svc.Delete(posting.ID, 8)
	assert.ErrorIs(t, err, util.ErrJobPostingNotFound)

	require.NoError(t, svc.Delete(posting.ID, 7))
	_, err = svc.Get(posting.ID, 7)
	assert.ErrorIs(t, err, util.ErrJobPostingNotFound)
}
