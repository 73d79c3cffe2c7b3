package model

type CoverLetter struct {
	BaseModel
	UserID       uint   `gorm:"not null;index" json:"userId"`
	JobPostingID *uint  `gorm:"index" json:"jobPostingId"`
	Content      string `gorm:"type:text;not null" json:"content"`
	AIFeedback   string `gorm:"type:text" json:"aiFeedback"`
}

func (CoverLetter) TableName() string {
	return "cover_letters"
}
