package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// FeedbackStatus tracks the deferred aggregate-feedback generation that runs
// after the final turn is answered.
type FeedbackStatus string

const (
	FeedbackNone    FeedbackStatus = "none"
	FeedbackPending FeedbackStatus = "pending"
	FeedbackReady   FeedbackStatus = "ready"
	FeedbackFailed  FeedbackStatus = "failed"
)

// MaxTurns is the fixed length of an interview.
const MaxTurns = 5

type InterviewSession struct {
	BaseModel
	UserID uint `gorm:"not null;index" json:"userId"`
	// No FK cascade from cover letters: deleting a letter must not take the
	// sessions that referenced it with it.
	CoverLetterID  uint            `gorm:"not null" json:"coverLetterId"`
	Status         SessionStatus   `gorm:"size:20;default:'in_progress'" json:"status"`
	FeedbackStatus FeedbackStatus  `gorm:"size:20;default:'none'" json:"feedbackStatus"`
	TotalFeedback  string          `gorm:"type:text" json:"totalFeedback"`
	CompletedAt    *time.Time      `json:"completedAt"`
	Turns          []InterviewTurn `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"turns,omitempty"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

type InterviewTurn struct {
	BaseModel
	SessionID        uint   `gorm:"not null;index:idx_session_turn,unique" json:"sessionId"`
	TurnNumber       int    `gorm:"not null;index:idx_session_turn,unique" json:"turnNumber"`
	QuestionText     string `gorm:"type:text;not null" json:"questionText"`
	QuestionAudioURL string `gorm:"size:512" json:"questionAudioUrl"`
	AnswerAudioURL   string `gorm:"size:512" json:"answerAudioUrl"`
	AnswerText       string `gorm:"type:text" json:"answerText"`
	TurnFeedback     string `gorm:"type:text" json:"turnFeedback"`
}

func (InterviewTurn) TableName() string {
	return "interview_turns"
}

// Answered reports whether the turn has a recorded transcript. A turn whose
// audio upload succeeded but whose transcription failed is still unanswered
// and may be resubmitted.
func (t *InterviewTurn) Answered() bool {
	return t.AnswerText != ""
}
