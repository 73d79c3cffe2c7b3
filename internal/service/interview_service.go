package service

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/logger"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GenericContextPhrase is used when no job-posting analysis is available for
// the session's cover letter.
const GenericContextPhrase = "해당 분야 전문가이자 면접관"

// ContextPhrase derives the interviewer role phrase injected into every
// question-generation prompt.
func ContextPhrase(analysis *model.JobAnalysis) string {
	if analysis != nil && len(analysis.Keywords) > 0 {
		return analysis.Keywords[0] + " 전문가이자 면접관"
	}
	return GenericContextPhrase
}

// InterviewStore is satisfied by *repository.InterviewRepository.
type InterviewStore interface {
	CreateSession(session *model.InterviewSession) error
	FindSessionByID(id uint) (*model.InterviewSession, error)
	FindSessionByIDForUser(id, userID uint) (*model.InterviewSession, error)
	ListSessionsByUser(userID uint) ([]model.InterviewSession, error)
	ListSessionsPendingFeedback() ([]model.InterviewSession, error)
	UpdateSession(session *model.InterviewSession) error
	CreateTurn(turn *model.InterviewTurn) error
	FindTurn(sessionID uint, turnNumber int) (*model.InterviewTurn, error)
	ListTurns(sessionID uint) ([]model.InterviewTurn, error)
	UpdateTurn(turn *model.InterviewTurn) error
}

// InterviewGateway covers the AI calls the orchestrator makes on the request
// path. Satisfied by *AIService.
type InterviewGateway interface {
	GenerateInterviewQuestion(ctx context.Context, contextPhrase string, turnNumber int, priorQA []QAPair) (string, error)
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
	TranscribeAudio(ctx context.Context, filename string, audio []byte) (string, error)
	GenerateInterviewFeedback(ctx context.Context, turns []TurnRecord) (*InterviewFeedback, error)
}

// BlobStore is satisfied by *StorageService.
type BlobStore interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ObjectKey(prefix, filename string) string
}

// FeedbackQueue hands completed sessions to the background feedback worker.
type FeedbackQueue interface {
	Enqueue(sessionID uint)
}

type InterviewService struct {
	store   InterviewStore
	letters CoverLetterStore
	posts   JobPostingStore
	gateway InterviewGateway
	blobs   BlobStore
	queue   FeedbackQueue
}

func NewInterviewService(store InterviewStore, letters CoverLetterStore, posts JobPostingStore, gateway InterviewGateway, blobs BlobStore) *InterviewService {
	return &InterviewService{
		store:   store,
		letters: letters,
		posts:   posts,
		gateway: gateway,
		blobs:   blobs,
	}
}

// SetFeedbackQueue wires the worker in after construction; the worker itself
// depends on this service.
func (s *InterviewService) SetFeedbackQueue(q FeedbackQueue) {
	s.queue = q
}

// TurnView is the client-facing shape of a question turn.
type TurnView struct {
	TurnNumber       int    `json:"turnNumber"`
	QuestionText     string `json:"questionText"`
	QuestionAudioURL string `json:"questionAudioUrl"`
}

type StartResult struct {
	SessionID   uint                `json:"sessionId"`
	Status      model.SessionStatus `json:"status"`
	CurrentTurn TurnView            `json:"currentTurn"`
}

type AnswerResult struct {
	TurnNumber         int       `json:"turnNumber"`
	AnswerAudioURL     string    `json:"answerAudioUrl"`
	AnswerText         string    `json:"answerText"`
	InterviewCompleted bool      `json:"interviewCompleted"`
	Message            string    `json:"message,omitempty"`
	NextTurn           *TurnView `json:"nextTurn,omitempty"`
}

type SessionResult struct {
	Session *model.InterviewSession `json:"session"`
	Turns   []model.InterviewTurn   `json:"turns"`
}

// contextForSession resolves the role phrase for a session. A deleted cover
// letter or posting degrades to the generic phrase; it never fails the call.
func (s *InterviewService) contextForSession(userID uint, coverLetterID uint) string {
	letter, err := s.letters.FindByIDForUser(coverLetterID, userID)
	if err != nil {
		return GenericContextPhrase
	}
	if letter.JobPostingID == nil {
		return GenericContextPhrase
	}
	posting, err := s.posts.FindByIDForUser(*letter.JobPostingID, userID)
	if err != nil {
		return GenericContextPhrase
	}
	return ContextPhrase(posting.Analysis)
}

// askQuestion generates the question for turnNumber, synthesizes its audio,
// stores the audio and persists the new turn.
func (s *InterviewService) askQuestion(ctx context.Context, session *model.InterviewSession, turnNumber int, priorQA []QAPair) (*model.InterviewTurn, error) {
	contextPhrase := s.contextForSession(session.UserID, session.CoverLetterID)

	questionText, err := s.gateway.GenerateInterviewQuestion(ctx, contextPhrase, turnNumber, priorQA)
	if err != nil {
		return nil, err
	}

	audio, err := s.gateway.SynthesizeSpeech(ctx, questionText)
	if err != nil {
		return nil, err
	}

	key := s.blobs.ObjectKey(
		fmt.Sprintf("interviews/%d/questions", session.ID),
		fmt.Sprintf("question_%d.mp3", turnNumber),
	)
	audioURL, err := s.blobs.Upload(ctx, key, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
	if err != nil {
		return nil, err
	}

	turn := &model.InterviewTurn{
		SessionID:        session.ID,
		TurnNumber:       turnNumber,
		QuestionText:     questionText,
		QuestionAudioURL: audioURL,
	}
	if err := s.store.CreateTurn(turn); err != nil {
		return nil, err
	}
	return turn, nil
}

// Start validates cover-letter ownership, creates the session and produces
// turn 1.
func (s *InterviewService) Start(ctx context.Context, userID, coverLetterID uint) (*StartResult, error) {
	_, err := s.letters.FindByIDForUser(coverLetterID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCoverLetterNotFound
	}
	if err != nil {
		return nil, err
	}

	session := &model.InterviewSession{
		UserID:         userID,
		CoverLetterID:  coverLetterID,
		Status:         model.SessionInProgress,
		FeedbackStatus: model.FeedbackNone,
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, err
	}

	turn, err := s.askQuestion(ctx, session, 1, nil)
	if err != nil {
		return nil, err
	}

	return &StartResult{
		SessionID: session.ID,
		Status:    session.Status,
		CurrentTurn: TurnView{
			TurnNumber:       turn.TurnNumber,
			QuestionText:     turn.QuestionText,
			QuestionAudioURL: turn.QuestionAudioURL,
		},
	}, nil
}

// SubmitAnswer records the answer for a turn: stores the audio, transcribes
// it, and either asks the next question or completes the interview after the
// final turn.
func (s *InterviewService) SubmitAnswer(ctx context.Context, userID, sessionID uint, turnNumber int, filename string, audio []byte, contentType string) (*AnswerResult, error) {
	session, err := s.store.FindSessionByIDForUser(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	turn, err := s.store.FindTurn(sessionID, turnNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTurnNotFound
	}
	if err != nil {
		return nil, err
	}
	if turn.Answered() {
		return nil, util.ErrTurnAlreadyAnswered
	}

	key := s.blobs.ObjectKey(fmt.Sprintf("interviews/%d/answers", sessionID), filename)
	answerURL, err := s.blobs.Upload(ctx, key, bytes.NewReader(audio), int64(len(audio)), contentType)
	if err != nil {
		return nil, err
	}

	// The stored audio is persisted before transcription so a transcription
	// failure leaves a repairable turn instead of losing the upload.
	turn.AnswerAudioURL = answerURL
	if err := s.store.UpdateTurn(turn); err != nil {
		return nil, err
	}

	transcript, err := s.gateway.TranscribeAudio(ctx, filename, audio)
	if err != nil {
		return nil, err
	}
	turn.AnswerText = transcript
	if err := s.store.UpdateTurn(turn); err != nil {
		return nil, err
	}

	result := &AnswerResult{
		TurnNumber:     turnNumber,
		AnswerAudioURL: answerURL,
		AnswerText:     transcript,
	}

	if turnNumber >= model.MaxTurns {
		now := time.Now()
		session.Status = model.SessionCompleted
		session.CompletedAt = &now
		session.FeedbackStatus = model.FeedbackPending
		if err := s.store.UpdateSession(session); err != nil {
			return nil, err
		}

		if s.queue != nil {
			s.queue.Enqueue(session.ID)
		}

		result.InterviewCompleted = true
		result.Message = "면접이 종료되었습니다. 피드백을 생성 중입니다."
		return result, nil
	}

	turns, err := s.store.ListTurns(sessionID)
	if err != nil {
		return nil, err
	}
	var priorQA []QAPair
	for _, t := range turns {
		if t.Answered() {
			priorQA = append(priorQA, QAPair{Question: t.QuestionText, Answer: t.AnswerText})
		}
	}

	nextTurn, err := s.askQuestion(ctx, session, turnNumber+1, priorQA)
	if err != nil {
		return nil, err
	}

	result.NextTurn = &TurnView{
		TurnNumber:       nextTurn.TurnNumber,
		QuestionText:     nextTurn.QuestionText,
		QuestionAudioURL: nextTurn.QuestionAudioURL,
	}
	return result, nil
}

// GenerateSessionFeedback runs the aggregate feedback step for a completed
// session. Invoked from the feedback worker, off the request path.
func (s *InterviewService) GenerateSessionFeedback(ctx context.Context, sessionID uint) error {
	session, err := s.store.FindSessionByID(sessionID)
	if err != nil {
		return err
	}

	turns, err := s.store.ListTurns(sessionID)
	if err != nil {
		return err
	}

	records := make([]TurnRecord, 0, len(turns))
	for _, t := range turns {
		records = append(records, TurnRecord{
			TurnNumber: t.TurnNumber,
			Question:   t.QuestionText,
			Answer:     t.AnswerText,
		})
	}

	feedback, err := s.gateway.GenerateInterviewFeedback(ctx, records)
	if err != nil {
		session.FeedbackStatus = model.FeedbackFailed
		if uerr := s.store.UpdateSession(session); uerr != nil {
			logger.Log.Error("failed to mark feedback failure",
				zap.Uint("sessionID", sessionID), zap.Error(uerr))
		}
		return err
	}

	// Per-turn feedback is paired by turn number. A short list is partial
	// success: turns past the end simply get none.
	if len(feedback.TurnFeedbacks) < len(turns) {
		logger.Log.Warn("per-turn feedback list shorter than turn count",
			zap.Uint("sessionID", sessionID),
			zap.Int("turns", len(turns)),
			zap.Int("feedbacks", len(feedback.TurnFeedbacks)))
	}
	for i := range turns {
		idx := turns[i].TurnNumber - 1
		if idx < 0 || idx >= len(feedback.TurnFeedbacks) {
			continue
		}
		turns[i].TurnFeedback = feedback.TurnFeedbacks[idx]
		if err := s.store.UpdateTurn(&turns[i]); err != nil {
			return err
		}
	}

	session.TotalFeedback = feedback.TotalFeedback
	session.FeedbackStatus = model.FeedbackReady
	return s.store.UpdateSession(session)
}

// ResumePendingFeedback re-enqueues sessions whose aggregate feedback never
// ran, typically because the process stopped between completion and the
// worker picking the job up. Called once at startup.
func (s *InterviewService) ResumePendingFeedback() error {
	if s.queue == nil {
		return nil
	}
	sessions, err := s.store.ListSessionsPendingFeedback()
	if err != nil {
		return err
	}
	for _, session := range sessions {
		logger.Log.Info("re-enqueueing session with pending feedback", zap.Uint("sessionID", session.ID))
		s.queue.Enqueue(session.ID)
	}
	return nil
}

// Result returns the session with all its turns in order.
func (s *InterviewService) Result(userID, sessionID uint) (*SessionResult, error) {
	session, err := s.store.FindSessionByIDForUser(sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	turns, err := s.store.ListTurns(sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionResult{Session: session, Turns: turns}, nil
}

// History returns the caller's sessions, newest first.
func (s *InterviewService) History(userID uint) ([]model.InterviewSession, error) {
	return s.store.ListSessionsByUser(userID)
}
