package service

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI serves an OpenAI-compatible API for the endpoints the service
// calls. chatContent is returned verbatim as the assistant message.
type fakeOpenAI struct {
	chatContent string
	transcript  string
	speech      []byte

	lastChatBody map[string]any
}

func (f *fakeOpenAI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		f.lastChatBody = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastChatBody))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": %s}
			}]
		}`, mustJSON(f.chatContent))
	})

	mux.HandleFunc("/audio/speech", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(f.speech)
	})

	mux.HandleFunc("/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"text": %s}`, mustJSON(f.transcript))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func newTestAIService(t *testing.T, fake *fakeOpenAI) *AIService {
	t.Helper()
	srv := fake.server(t)
	return NewAIService(config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

func TestAnalyzeJobPosting(t *testing.T) {
	fake := &fakeOpenAI{
		chatContent: `{"keywords": ["Go", "Kubernetes"], "requirements": ["3년 이상 백엔드 경력"]}`,
	}
	svc := newTestAIService(t, fake)

	analysis, err := svc.AnalyzeJobPosting(context.Background(), "백엔드 엔지니어 모집")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, analysis.Keywords)
	assert.Equal(t, []string{"3년 이상 백엔드 경력"}, analysis.Requirements)

	// JSON mode is requested so the reply parses deterministically.
	rf, ok := fake.lastChatBody["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
}

func TestAnalyzeJobPostingMalformedReply(t *testing.T) {
	fake := &fakeOpenAI{chatContent: "JSON이 아닌 응답"}
	svc := newTestAIService(t, fake)

	_, err := svc.AnalyzeJobPosting(context.Background(), "text")
	assert.ErrorIs(t, err, util.ErrUpstreamFormat)
}

func TestGenerateInterviewQuestion(t *testing.T) {
	fake := &fakeOpenAI{chatContent: "자기소개를 부탁드립니다."}
	svc := newTestAIService(t, fake)

	question, err := svc.GenerateInterviewQuestion(context.Background(), "Go 전문가이자 면접관", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "자기소개를 부탁드립니다.", question)

	messages := fake.lastChatBody["messages"].([]any)
	require.Len(t, messages, 2)
	userMsg := messages[1].(map[string]any)
	assert.Contains(t, userMsg["content"], "Go 전문가이자 면접관")
}

func TestGenerateInterviewQuestionIncludesHistory(t *testing.T) {
	fake := &fakeOpenAI{chatContent: "다음 질문입니다."}
	svc := newTestAIService(t, fake)

	prior := []QAPair{
		{Question: "자기소개를 해주세요.", Answer: "저는 백엔드 개발자입니다."},
		{Question: "프로젝트 경험은?", Answer: "결제 시스템을 만들었습니다."},
	}
	_, err := svc.GenerateInterviewQuestion(context.Background(), "Go 전문가이자 면접관", 3, prior)
	require.NoError(t, err)

	userMsg := fake.lastChatBody["messages"].([]any)[1].(map[string]any)
	content := userMsg["content"].(string)
	assert.Contains(t, content, "저는 백엔드 개발자입니다.")
	assert.Contains(t, content, "결제 시스템을 만들었습니다.")
	assert.Contains(t, content, "3/5")
}

func TestGenerateCoverLetterFeedback(t *testing.T) {
	fake := &fakeOpenAI{chatContent: "전반적으로 훌륭합니다."}
	svc := newTestAIService(t, fake)

	analysis := &model.JobAnalysis{
		Keywords:     []string{"Go", "MySQL"},
		Requirements: []string{"3년 이상"},
	}
	feedback, err := svc.GenerateCoverLetterFeedback(context.Background(),
		"이름: 김철수", analysis, "자기소개서 본문")
	require.NoError(t, err)
	assert.Equal(t, "전반적으로 훌륭합니다.", feedback)

	userMsg := fake.lastChatBody["messages"].([]any)[1].(map[string]any)
	content := userMsg["content"].(string)
	assert.Contains(t, content, "이름: 김철수")
	assert.Contains(t, content, "자기소개서 본문")
	assert.Contains(t, content, strings.Join(analysis.Keywords, ", "))
}

func TestSynthesizeSpeech(t *testing.T) {
	fake := &fakeOpenAI{speech: []byte("fake-mp3-bytes")}
	svc := newTestAIService(t, fake)

	audio, err := svc.SynthesizeSpeech(context.Background(), "안녕하세요")
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-mp3-bytes"), audio)
}

func TestTranscribeAudio(t *testing.T) {
	fake := &fakeOpenAI{transcript: "저는 5년차 개발자입니다."}
	svc := newTestAIService(t, fake)

	text, err := svc.TranscribeAudio(context.Background(), "answer.webm", []byte("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "저는 5년차 개발자입니다.", text)
}

func TestGenerateInterviewFeedback(t *testing.T) {
	fake := &fakeOpenAI{
		chatContent: `{"total_feedback": "전체적으로 준수합니다.", "turn_feedbacks": ["좋음", "보통", "좋음", "개선 필요", "좋음"]}`,
	}
	svc := newTestAIService(t, fake)

	turns := make([]TurnRecord, 0, 5)
	for i := 1; i <= 5; i++ {
		turns = append(turns, TurnRecord{TurnNumber: i, Question: fmt.Sprintf("질문 %d", i), Answer: fmt.Sprintf("답변 %d", i)})
	}

	feedback, err := svc.GenerateInterviewFeedback(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "전체적으로 준수합니다.", feedback.TotalFeedback)
	require.Len(t, feedback.TurnFeedbacks, 5)
	assert.Equal(t, "개선 필요", feedback.TurnFeedbacks[3])
}

func TestGenerateInterviewFeedbackMalformedReply(t *testing.T) {
	fake := &fakeOpenAI{chatContent: "형식을 지키지 않은 응답"}
	svc := newTestAIService(t, fake)

	_, err := svc.GenerateInterviewFeedback(context.Background(), []TurnRecord{{TurnNumber: 1}})
	assert.ErrorIs(t, err, util.ErrUpstreamFormat)
}
