package service

import (
	"ai_interview_backend/internal/model"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGenerator struct {
	mu    sync.Mutex
	ids   []uint
	err   error
	delay time.Duration
}

func (g *recordingGenerator) GenerateSessionFeedback(ctx context.Context, sessionID uint) error {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	g.mu.Lock()
	g.ids = append(g.ids, sessionID)
	g.mu.Unlock()
	return g.err
}

func (g *recordingGenerator) seen() []uint {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]uint(nil), g.ids...)
}

func TestFeedbackWorkerProcessesJobs(t *testing.T) {
	gen := &recordingGenerator{}
	worker := NewFeedbackWorker(gen, 2)
	worker.Start(context.Background())
	defer worker.Stop()

	for i := uint(1); i <= 5; i++ {
		worker.Enqueue(i)
	}

	require.Eventually(t, func() bool {
		return len(gen.seen()) == 5
	}, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5}, gen.seen())
}

func TestFeedbackWorkerSurvivesGeneratorErrors(t *testing.T) {
	gen := &recordingGenerator{err: errors.New("upstream down")}
	worker := NewFeedbackWorker(gen, 1)
	worker.Start(context.Background())
	defer worker.Stop()

	worker.Enqueue(1)
	worker.Enqueue(2)

	require.Eventually(t, func() bool {
		return len(gen.seen()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

// Stop must not abandon jobs that were accepted before shutdown: every
// queued session is processed before Stop returns.
func TestFeedbackWorkerStopDrainsQueuedJobs(t *testing.T) {
	gen := &recordingGenerator{delay: 20 * time.Millisecond}
	worker := NewFeedbackWorker(gen, 1)
	worker.Start(context.Background())

	for i := uint(1); i <= 10; i++ {
		worker.Enqueue(i)
	}
	worker.Stop()

	assert.ElementsMatch(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, gen.seen())
}

func TestFeedbackWorkerStopIsIdempotent(t *testing.T) {
	worker := NewFeedbackWorker(&recordingGenerator{}, 1)
	worker.Start(context.Background())
	worker.Stop()
	worker.Stop()

	// Enqueue after stop must not block.
	finished := make(chan struct{})
	go func() {
		worker.Enqueue(9)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked after Stop")
	}
}

// Full deferred-feedback flow: answering the final turn hands the session to
// the worker, which eventually writes the aggregate feedback.
func TestDeferredFeedbackEndToEnd(t *testing.T) {
	f := newInterviewFixture(t)

	worker := NewFeedbackWorker(f.svc, 1)
	f.svc.SetFeedbackQueue(worker)
	worker.Start(context.Background())
	defer worker.Stop()

	start, err := f.svc.Start(context.Background(), f.userID, f.letterID)
	require.NoError(t, err)
	for turn := 1; turn <= model.MaxTurns; turn++ {
		f.answer(t, start.SessionID, turn)
	}

	require.Eventually(t, func() bool {
		session, err := f.store.FindSessionByID(start.SessionID)
		return err == nil && session.FeedbackStatus == model.FeedbackReady
	}, 2*time.Second, 10*time.Millisecond)

	session, err := f.store.FindSessionByID(start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "종합 피드백", session.TotalFeedback)

	turns, err := f.store.ListTurns(start.SessionID)
	require.NoError(t, err)
	for _, turn := range turns {
		assert.Equal(t, fmt.Sprintf("턴 %d 피드백", turn.TurnNumber), turn.TurnFeedback)
	}
}
