package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	in := "  백엔드 엔지니어 모집  \n\n\n   주요 업무   \n\nGo 서버 개발\n"
	assert.Equal(t, "백엔드 엔지니어 모집\n주요 업무\nGo 서버 개발", CleanText(in))
	assert.Equal(t, "", CleanText("   \n \n\t\n"))
}
