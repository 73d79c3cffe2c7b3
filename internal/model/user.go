package model

type User struct {
	BaseModel
	Email          string `gorm:"size:255;unique;not null" json:"email"`
	Password       string `gorm:"size:255;not null" json:"-"`
	Name           string `gorm:"size:100" json:"name"`
	Age            int    `json:"age"`
	Gender         string `gorm:"size:10" json:"gender"`
	CareerSummary  string `gorm:"type:text" json:"careerSummary"`
	Certifications string `gorm:"type:text" json:"certifications"`
}

func (User) TableName() string {
	return "users"
}
