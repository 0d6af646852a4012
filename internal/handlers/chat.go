package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/logger"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/metrics"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/models"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/services"
)

// Fixed replies. Every failure is reported to the learner as one of these.
const (
	ReplyEmptyMessage = "Пожалуйста, напишите сообщение."
	ReplyConfigError  = "Ошибка конфигурации сервера. Попробуйте позже."
	ReplyServerError  = "Внутренняя ошибка сервера. Попробуйте позже."
)

type textGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	generator   textGenerator
	instruction string
	metrics     *metrics.Metrics
}

func NewChatHandler(generator textGenerator, instruction string, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{
		generator:   generator,
		instruction: instruction,
		metrics:     m,
	}
}

// Chat always answers 200 with a reply; errors are encoded in the reply text.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Errorw("chat handler panicked", "request_id", requestID, "panic", rec)
			h.reply(w, metrics.OutcomePanic, ReplyServerError)
		}
	}()

	// A missing or malformed body counts as an empty message.
	var req models.ChatRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.reply(w, metrics.OutcomeEmptyInput, ReplyEmptyMessage)
		return
	}

	if h.generator == nil || !h.generator.Configured() {
		logger.Errorw("chat requested but GEMINI_API_KEY is not set", "request_id", requestID)
		h.reply(w, metrics.OutcomeConfigError, ReplyConfigError)
		return
	}

	prompt := services.BuildPrompt(h.instruction, message)

	text, err := h.generator.GenerateText(r.Context(), prompt)
	if err != nil {
		outcome := metrics.OutcomeUpstream
		switch {
		case errors.Is(err, services.ErrMissingAPIKey):
			h.reply(w, metrics.OutcomeConfigError, ReplyConfigError)
			return
		case errors.Is(err, services.ErrEmptyResponse):
			outcome = metrics.OutcomeEmptyReply
		}
		logger.Errorw("gemini request failed", "request_id", requestID, "error", err)
		h.reply(w, outcome, ReplyServerError)
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warnw("gemini returned blank text", "request_id", requestID)
		h.reply(w, metrics.OutcomeEmptyReply, ReplyServerError)
		return
	}

	h.reply(w, metrics.OutcomeOK, text)
}

func (h *ChatHandler) reply(w http.ResponseWriter, outcome, text string) {
	h.metrics.ObserveReply(outcome)
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: text})
}
