package repository

import (
	"ai_interview_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

func (r *InterviewRepository) CreateSession(session *model.InterviewSession) error {
	return r.DB.Create(session).Error
}

func (r *InterviewRepository) FindSessionByID(id uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *InterviewRepository) FindSessionByIDForUser(id, userID uint) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	return &session, err
}

func (r *InterviewRepository) ListSessionsByUser(userID uint) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *InterviewRepository) ListSessionsPendingFeedback() ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	err := r.DB.Where("feedback_status = ?", model.FeedbackPending).Find(&sessions).Error
	return sessions, err
}

func (r *InterviewRepository) UpdateSession(session *model.InterviewSession) error {
	return r.DB.Save(session).Error
}

func (r *InterviewRepository) CreateTurn(turn *model.InterviewTurn) error {
	return r.DB.Create(turn).Error
}

func (r *InterviewRepository) FindTurn(sessionID uint, turnNumber int) (*model.InterviewTurn, error) {
	var turn model.InterviewTurn
	err := r.DB.Where("session_id = ? AND turn_number = ?", sessionID, turnNumber).First(&turn).Error
	return &turn, err
}

func (r *InterviewRepository) ListTurns(sessionID uint) ([]model.InterviewTurn, error) {
	var turns []model.InterviewTurn
	err := r.DB.Where("session_id = ?", sessionID).Order("turn_number ASC").Find(&turns).Error
	return turns, err
}

func (r *InterviewRepository) UpdateTurn(turn *model.InterviewTurn) error {
	return r.DB.Save(turn).Error
}
