package service

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"ai_interview_backend/pkg/monitoring"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// QAPair is one question/answer exchange fed back into question generation.
type QAPair struct {
	Question string
	Answer   string
}

// TurnRecord is the per-turn input for aggregate interview feedback.
type TurnRecord struct {
	TurnNumber int
	Question   string
	Answer     string
}

// InterviewFeedback is the structured output of aggregate feedback
// generation. TurnFeedbacks is ordered by turn number.
type InterviewFeedback struct {
	TotalFeedback string   `json:"total_feedback"`
	TurnFeedbacks []string `json:"turn_feedbacks"`
}

// AIService wraps the OpenAI API for job-posting analysis, cover-letter
// feedback, interview question generation, TTS and STT.
type AIService struct {
	client    oai.Client
	chatModel string
	ttsModel  string
	ttsVoice  string
	sttModel  string
}

func NewAIService(cfg config.OpenAIConfig) *AIService {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}

	s := &AIService{
		client:    oai.NewClient(reqOpts...),
		chatModel: cfg.ChatModel,
		ttsModel:  cfg.TTSModel,
		ttsVoice:  cfg.TTSVoice,
		sttModel:  cfg.STTModel,
	}
	if s.chatModel == "" {
		s.chatModel = "gpt-4o"
	}
	if s.ttsModel == "" {
		s.ttsModel = "tts-1-hd"
	}
	if s.ttsVoice == "" {
		s.ttsVoice = "alloy"
	}
	if s.sttModel == "" {
		s.sttModel = "whisper-1"
	}
	return s
}

func (s *AIService) complete(ctx context.Context, system, user string, temperature float64, jsonMode bool) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.chatModel),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
		Temperature: param.NewOpt(temperature),
	}
	if jsonMode {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w: empty choices", util.ErrUpstreamFormat)
	}
	return resp.Choices[0].Message.Content, nil
}

// AnalyzeJobPosting extracts keywords and requirements from raw posting text.
func (s *AIService) AnalyzeJobPosting(ctx context.Context, text string) (*model.JobAnalysis, error) {
	defer monitoring.ObserveUpstream("analyze", time.Now())

	prompt := fmt.Sprintf(`다음 채용 공고를 분석하여 JSON 형식으로 반환해주세요:

채용 공고:
%s

다음 형식으로 반환해주세요:
{
    "keywords": ["키워드1", "키워드2", ...],
    "requirements": ["요구사항1", "요구사항2", ...]
}

키워드는 주요 기술 스택, 요구사항은 필수 역량이나 경력을 포함해주세요.`, text)

	content, err := s.complete(ctx, "당신은 채용 공고 분석 전문가입니다.", prompt, 0.7, true)
	if err != nil {
		return nil, err
	}

	var analysis model.JobAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("analyze job posting: %w: %v", util.ErrUpstreamFormat, err)
	}
	return &analysis, nil
}

// GenerateCoverLetterFeedback reviews a cover letter against the applicant
// profile and the analyzed posting.
func (s *AIService) GenerateCoverLetterFeedback(ctx context.Context, userSpec string, analysis *model.JobAnalysis, coverLetter string) (string, error) {
	defer monitoring.ObserveUpstream("cover_letter_feedback", time.Now())

	prompt := fmt.Sprintf(`당신은 채용 전문가입니다. 다음 정보를 바탕으로 자기소개서에 대한 피드백을 제공해주세요.

[지원자 스펙]
%s

[채용 공고 분석]
키워드: %s
요구사항: %s

[자기소개서]
%s

다음 관점에서 피드백을 제공해주세요:
1. 전반적인 평가
2. 강점
3. 개선점
4. 구체적인 조언`,
		userSpec,
		strings.Join(analysis.Keywords, ", "),
		strings.Join(analysis.Requirements, ", "),
		coverLetter,
	)

	return s.complete(ctx, "당신은 채용 전문가입니다.", prompt, 0.7, false)
}

// GenerateInterviewQuestion produces the question for turnNumber. priorQA is
// empty for the first turn.
func (s *AIService) GenerateInterviewQuestion(ctx context.Context, contextPhrase string, turnNumber int, priorQA []QAPair) (string, error) {
	defer monitoring.ObserveUpstream("question", time.Now())

	var prompt string
	if turnNumber == 1 {
		prompt = fmt.Sprintf(`당신은 %s입니다.

지원자의 첫 번째 면접 질문을 해주세요. 자기소개를 요청하는 것이 좋습니다.`, contextPhrase)
	} else {
		var sb strings.Builder
		for i, qa := range priorQA {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s", i+1, qa.Question, i+1, qa.Answer)
		}

		prompt = fmt.Sprintf(`당신은 %s입니다.

이전 대화:
%s

현재 %d/%d 턴입니다.
이전 답변을 고려하여 다음 질문을 해주세요. 꼬리 질문이나 새로운 주제 모두 가능합니다.`,
			contextPhrase, sb.String(), turnNumber, model.MaxTurns)
	}

	return s.complete(ctx, "당신은 면접관입니다.", prompt, 0.8, false)
}

// SynthesizeSpeech renders text as MP3 audio.
func (s *AIService) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	defer monitoring.ObserveUpstream("tts", time.Now())

	resp, err := s.client.Audio.Speech.New(ctx, oai.AudioSpeechNewParams{
		Model: oai.SpeechModel(s.ttsModel),
		Voice: oai.AudioSpeechNewParamsVoice(s.ttsVoice),
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: read body: %w", err)
	}
	return audio, nil
}

// TranscribeAudio converts recorded answer audio to text.
func (s *AIService) TranscribeAudio(ctx context.Context, filename string, audio []byte) (string, error) {
	defer monitoring.ObserveUpstream("stt", time.Now())

	transcription, err := s.client.Audio.Transcriptions.New(ctx, oai.AudioTranscriptionNewParams{
		Model: oai.AudioModel(s.sttModel),
		File:  oai.File(bytes.NewReader(audio), filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return transcription.Text, nil
}

// GenerateInterviewFeedback produces one overall feedback string plus
// per-turn feedback for the full interview record.
func (s *AIService) GenerateInterviewFeedback(ctx context.Context, turns []TurnRecord) (*InterviewFeedback, error) {
	defer monitoring.ObserveUpstream("feedback", time.Now())

	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[질문 %d]\n%s\n\n[답변 %d]\n%s", t.TurnNumber, t.Question, t.TurnNumber, t.Answer)
	}

	prompt := fmt.Sprintf(`다음은 %d턴의 면접 전체 기록입니다.

%s

다음 형식으로 JSON을 생성해주세요:
{
    "total_feedback": "전체적인 종합 피드백",
    "turn_feedbacks": [
        "질문 1에 대한 피드백",
        "질문 2에 대한 피드백",
        ...
    ]
}

turn_feedbacks는 질문 순서대로 각 턴에 대한 피드백을 담아주세요.`, model.MaxTurns, sb.String())

	content, err := s.complete(ctx, "당신은 면접 평가 전문가입니다.", prompt, 0.7, true)
	if err != nil {
		return nil, err
	}

	var feedback InterviewFeedback
	if err := json.Unmarshal([]byte(content), &feedback); err != nil {
		return nil, fmt.Errorf("interview feedback: %w: %v", util.ErrUpstreamFormat, err)
	}
	return &feedback, nil
}
