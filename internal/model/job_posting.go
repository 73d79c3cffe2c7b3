package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JobAnalysis is the structured result of the AI analysis of a posting,
// stored as a JSON column.
type JobAnalysis struct {
	Keywords     []string `json:"keywords"`
	Requirements []string `json:"requirements"`
}

func (a JobAnalysis) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JobAnalysis) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			data = []byte(s)
		} else {
			return errors.New("unsupported type for JobAnalysis")
		}
	}
	return json.Unmarshal(data, a)
}

type JobPosting struct {
	BaseModel
	UserID       uint         `gorm:"not null;index" json:"userId"`
	Title        string       `gorm:"size:255" json:"title"`
	OriginalText string       `gorm:"type:longtext;not null" json:"originalText"`
	Analysis     *JobAnalysis `gorm:"type:json" json:"analysis"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
