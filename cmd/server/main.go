package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/config"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/handlers"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/logger"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/metrics"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/router"
	"github.com/OlzhasKolzhabay/kazakh-chatbot/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.IsProduction()); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Infow("Starting Kazakh tutor relay", "env", cfg.Env)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("✗ Invalid configuration", err)
	}
	logger.Infow("✓ Environment variables loaded",
		"model", cfg.GeminiModel,
		"temperature", cfg.GeminiTemperature,
		"max_output_tokens", cfg.GeminiMaxOutputTokens,
		"timeout", cfg.GeminiTimeout.String(),
	)

	instruction, err := services.LoadInstruction(cfg.TutorPromptFile)
	if err != nil {
		logger.Fatal("✗ Tutor prompt could not be loaded", err)
	}

	// ──── Step 2: Initialize Gemini Client ────
	m := metrics.New()

	geminiService, err := services.NewGeminiService(context.Background(), services.GeminiOptions{
		APIKey:          cfg.GeminiAPIKey,
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		MaxOutputTokens: cfg.GeminiMaxOutputTokens,
		Timeout:         cfg.GeminiTimeout,
	}, m)
	if err != nil {
		logger.Fatal("✗ Gemini client initialization failed", err)
	}
	defer geminiService.Close()

	if geminiService.Configured() {
		logger.Infow("✓ Gemini client initialized")
	} else {
		logger.Warnw("GEMINI_API_KEY is not set, /chat will answer with a configuration error")
	}

	// ──── Step 3: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(geminiService, instruction, m)
	r := router.New(chatHandler, m.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GeminiTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Infow("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	logger.Infof("✓ Relay ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", err)
	}
	<-idle
}
