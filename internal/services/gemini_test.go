package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/metrics"
)

type fakeModel struct {
	resp     *genai.GenerateContentResponse
	err      error
	calls    int
	prompt   string
	deadline bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	if len(parts) == 1 {
		if t, ok := parts[0].(genai.Text); ok {
			f.prompt = string(t)
		}
	}
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func textResponse(chunks ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, genai.Text(c))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestNewGeminiService_WithoutKeyIsUnconfigured(t *testing.T) {
	s, err := NewGeminiService(context.Background(), GeminiOptions{Model: "gemini-flash-latest"}, nil)
	require.NoError(t, err)
	require.False(t, s.Configured())

	_, err = s.GenerateText(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	// Close must tolerate the missing client.
	s.Close()
}

func TestGenerateText_ReturnsTrimmedText(t *testing.T) {
	model := &fakeModel{resp: textResponse("  Сә", "лем \n")}
	m := metrics.New()
	s := &GeminiService{model: model, timeout: time.Second, metrics: m}

	reply, err := s.GenerateText(context.Background(), "the prompt")
	require.NoError(t, err)
	require.Equal(t, "Сәлем", reply)
	require.Equal(t, "the prompt", model.prompt)
	require.True(t, model.deadline, "outbound call must carry a deadline")
	require.Equal(t, 1, testutil.CollectAndCount(m.GeminiLatency))
}

func TestGenerateText_WrapsAPIError(t *testing.T) {
	apiErr := errors.New("quota exceeded")
	s := &GeminiService{model: &fakeModel{err: apiErr}}

	_, err := s.GenerateText(context.Background(), "prompt")
	require.ErrorIs(t, err, apiErr)
}

func TestGenerateText_EmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}},
		{"whitespace only", textResponse("  \n\t")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &GeminiService{model: &fakeModel{resp: tc.resp}}
			_, err := s.GenerateText(context.Background(), "prompt")
			require.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestExtractText_SkipsNonTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Сәлем"),
				genai.Blob{MIMEType: "image/png", Data: []byte{1}},
				genai.Text("!"),
			}},
		}},
	}

	require.Equal(t, "Сәлем!", extractText(resp))
}
