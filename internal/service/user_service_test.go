package service

import (
	"ai_interview_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserSpec(t *testing.T) {
	user := &model.User{
		Name:           "김철수",
		Age:            29,
		Gender:         "남성",
		CareerSummary:  "백엔드 5년",
		Certifications: "정보처리기사",
	}

	spec := BuildUserSpec(user)
	assert.Equal(t, "이름: 김철수\n나이: 29\n성별: 남성\n경력: 백엔드 5년\n자격증: 정보처리기사", spec)
}
