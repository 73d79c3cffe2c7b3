package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReviewer struct {
	mu       sync.Mutex
	feedback string
	err      error
	calls    int
	lastSpec string
}

func (s *stubReviewer) GenerateCoverLetterFeedback(ctx context.Context, userSpec string, analysis *model.JobAnalysis, coverLetter string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.lastSpec = userSpec
	s.mu.Unlock()
	return s.feedback, s.err
}

func coverLetterTestUser() *model.User {
	u := &model.User{
		Email:         "kim@example.com",
		Name:          "김철수",
		Age:           29,
		Gender:        "남성",
		CareerSummary: "백엔드 5년",
	}
	u.ID = 7
	return u
}

func TestCreateCoverLetterWithoutPosting(t *testing.T) {
	letters := newFakeLetterStore()
	reviewer := &stubReviewer{feedback: "unused"}
	svc := NewCoverLetterService(letters, newFakePostingStore(), reviewer)

	letter, err := svc.Create(context.Background(), coverLetterTestUser(), "자기소개서", nil)
	require.NoError(t, err)

	assert.Nil(t, letter.JobPostingID)
	assert.Empty(t, letter.AIFeedback)
	assert.Zero(t, reviewer.calls)
}

func TestCreateCoverLetterWithAnalyzedPosting(t *testing.T) {
	letters := newFakeLetterStore()
	postings := newFakePostingStore()
	reviewer := &stubReviewer{feedback: "강점이 잘 드러납니다."}
	svc := NewCoverLetterService(letters, postings, reviewer)

	user := coverLetterTestUser()
	posting := &model.JobPosting{
		UserID:   user.ID,
		Analysis: &model.JobAnalysis{Keywords: []string{"Go"}},
	}
	require.NoError(t, postings.Create(posting))

	letter, err := svc.Create(context.Background(), user, "자기소개서", &posting.ID)
	require.NoError(t, err)

	assert.Equal(t, "강점이 잘 드러납니다.", letter.AIFeedback)
	assert.Equal(t, 1, reviewer.calls)
	assert.Contains(t, reviewer.lastSpec, "김철수")

	stored, err := letters.FindByIDForUser(letter.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "강점이 잘 드러납니다.", stored.AIFeedback)
}

func TestCreateCoverLetterPostingWithoutAnalysis(t *testing.T) {
	letters := newFakeLetterStore()
	postings := newFakePostingStore()
	reviewer := &stubReviewer{}
	svc := NewCoverLetterService(letters, postings, reviewer)

	user := coverLetterTestUser()
	posting := &model.JobPosting{UserID: user.ID}
	require.NoError(t, postings.Create(posting))

	letter, err := svc.Create(context.Background(), user, "자기소개서", &posting.ID)
	require.NoError(t, err)
	assert.Empty(t, letter.AIFeedback)
	assert.Zero(t, reviewer.calls)
}

func TestCreateCoverLetterUnknownPosting(t *testing.T) {
	letters := newFakeLetterStore()
	svc := NewCoverLetterService(letters, newFakePostingStore(), &stubReviewer{})

	id := uint(99)
	_, err := svc.Create(context.Background(), coverLetterTestUser(), "자기소개서", &id)
	assert.ErrorIs(t, err, util.ErrJobPostingNotFound)
	assert.Empty(t, letters.letters)
}

func TestCreateCoverLetterFeedbackFailureKeepsLetter(t *testing.T) {
	letters := newFakeLetterStore()
	postings := newFakePostingStore()
	reviewer := &stubReviewer{err: errors.New("upstream down")}
	svc := NewCoverLetterService(letters, postings, reviewer)

	user := coverLetterTestUser()
	posting := &model.JobPosting{
		UserID:   user.ID,
		Analysis: &model.JobAnalysis{Keywords: []string{"Go"}},
	}
	require.NoError(t, postings.Create(posting))

	_, err := svc.Create(context.Background(), user, "자기소개서", &posting.ID)
	require.Error(t, err)

	// The letter itself is not rolled back; only the feedback is missing.
	require.Len(t, letters.letters, 1)
	for _, stored := range letters.letters {
		assert.Empty(t, stored.AIFeedback)
		assert.Equal(t, "자기소개서", stored.Content)
	}
}

func TestUpdateAndDeleteCoverLetter(t *testing.T) {
	letters := newFakeLetterStore()
	svc := NewCoverLetterService(letters, newFakePostingStore(), &stubReviewer{})
	user := coverLetterTestUser()

	letter, err := svc.Create(context.Background(), user, "초안", nil)
	require.NoError(t, err)

	updated := "수정된 자기소개서"
	got, err := svc.Update(letter.ID, user.ID, &updated)
	require.NoError(t, err)
	assert.Equal(t, updated, got.Content)

	_, err = svc.Update(letter.ID, user.ID+1, &updated)
	assert.ErrorIs(t, err, util.ErrCoverLetterNotFound)

	require.NoError(t, svc.Delete(letter.ID, user.ID))
	_, err = svc.Get(letter.ID, user.ID)
	assert.ErrorIs(t, err, util.ErrCoverLetterNotFound)
}
