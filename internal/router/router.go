package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/handlers"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/middleware"
)

func New(chatHandler *handlers.ChatHandler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Health check
	r.Get("/health", handlers.Health)

	r.Post("/chat", chatHandler.Chat)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
