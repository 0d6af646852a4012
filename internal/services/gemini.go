package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/logger"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/metrics"
)

var (
	ErrMissingAPIKey = errors.New("gemini API key is not configured")
	ErrEmptyResponse = errors.New("gemini returned no text")
)

type GeminiOptions struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// contentGenerator is the subset of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiService is created once at startup and shared by all requests.
type GeminiService struct {
	client  *genai.Client
	model   contentGenerator
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewGeminiService returns an unconfigured service when opts.APIKey is empty.
// Such a service never calls the API: GenerateText fails with ErrMissingAPIKey.
func NewGeminiService(ctx context.Context, opts GeminiOptions, m *metrics.Metrics) (*GeminiService, error) {
	s := &GeminiService{timeout: opts.Timeout, metrics: m}
	if opts.APIKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(float32(opts.Temperature))
	model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))

	s.client = client
	s.model = model
	return s, nil
}

func (s *GeminiService) Configured() bool {
	return s != nil && s.model != nil
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// GenerateText sends prompt as a single text part and returns the trimmed reply.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !s.Configured() {
		return "", ErrMissingAPIKey
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.metrics.ObserveGemini("error", time.Since(start).Seconds())
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	s.metrics.ObserveGemini("ok", time.Since(start).Seconds())

	if resp == nil {
		return "", ErrEmptyResponse
	}
	for i, cand := range resp.Candidates {
		if cand != nil && cand.FinishReason != genai.FinishReasonStop {
			logger.Warnw("Gemini stopped early", "candidate", i, "finish_reason", cand.FinishReason.String())
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
