package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/adapters/llm"
	"github.com/hanifmaulana/aivoicebot/adapters/stt"
	"github.com/hanifmaulana/aivoicebot/adapters/tts"
	"github.com/hanifmaulana/aivoicebot/domain/repositories"
	"github.com/hanifmaulana/aivoicebot/internal/api"
	"github.com/hanifmaulana/aivoicebot/internal/audiocache"
	"github.com/hanifmaulana/aivoicebot/internal/chatlog"
	"github.com/hanifmaulana/aivoicebot/internal/config"
	"github.com/hanifmaulana/aivoicebot/internal/playback"
	"github.com/hanifmaulana/aivoicebot/internal/websocket"
	"github.com/hanifmaulana/aivoicebot/usecase"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	host := flag.String("host", cfg.WSHost, "WebSocket host")
	port := flag.Int("port", cfg.WSPort, "WebSocket port")
	httpPort := flag.Int("http-port", cfg.HTTPPort, "HTTP dashboard port")
	demo := flag.Bool("demo", false, "run with mock AI backends, no API key required")
	flag.Parse()

	if !*demo && cfg.GeminiAPIKey == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not configured; set it in .env or run with --demo")
		os.Exit(1)
	}

	var (
		languageModel repositories.LanguageModel
		synthesizer   repositories.SpeechSynthesizer
		transcriber   repositories.Transcriber
	)
	if *demo {
		logger.Info("Running in demo mode with mock AI backends")
		languageModel = llm.NewMockLanguageModel()
		synthesizer = tts.NewMockSynthesizer()
		transcriber = stt.NewMockTranscriber()
	} else {
		languageModel = llm.NewGeminiLLM(cfg.GeminiAPIKey, cfg.ChatModel, logger)
		synthesizer = tts.NewGeminiTTS(cfg.GeminiAPIKey, cfg.TTSModel, logger)
		transcriber = stt.NewGoogleTranscriber(logger)
	}

	gateway := usecase.NewGateway(languageModel, synthesizer, transcriber, logger)
	if err := gateway.Initialize(context.Background()); err != nil {
		// Not fatal: the gateway retries initialization on first use.
		logger.Warn("AI gateway not ready yet", zap.Error(err))
	}

	chatLog, err := chatlog.NewChatLogger(cfg.LogFile, logger)
	if err != nil {
		logger.Fatal("Failed to open chat log", zap.Error(err))
	}

	cache := audiocache.New(audiocache.DefaultLimit)
	voiceService := usecase.NewVoiceService(gateway, cache, logger)
	hub := websocket.NewHub(logger)
	player := playback.NewPlayer(logger)
	router := websocket.NewRouter(hub, gateway, voiceService, player, chatLog, logger)

	deps := api.Deps{
		Hub:       hub,
		Router:    router,
		Gateway:   gateway,
		Voice:     voiceService,
		ChatLog:   chatLog,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	}

	// Message transport listener
	transport := echo.New()
	transport.HideBanner = true
	transport.Use(middleware.Recover())
	api.RegisterTransport(transport, deps)

	// Dashboard listener
	dashboard := echo.New()
	dashboard.HideBanner = true
	dashboard.Use(middleware.Logger())
	dashboard.Use(middleware.Recover())
	dashboard.Use(middleware.CORS())
	api.RegisterDashboard(dashboard, deps)

	wsAddr := fmt.Sprintf("%s:%d", *host, *port)
	httpAddr := fmt.Sprintf("%s:%d", *host, *httpPort)

	go func() {
		if err := transport.Start(wsAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("WebSocket server stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := dashboard.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	logger.Info("AI Voice Bot started",
		zap.String("websocket", "ws://"+wsAddr+"/ws"),
		zap.String("dashboard", "http://"+httpAddr),
		zap.String("logFile", chatLog.FilePath()),
		zap.Bool("demo", *demo))

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := transport.Shutdown(ctx); err != nil {
		logger.Error("WebSocket server forced to shutdown", zap.Error(err))
	}
	if err := dashboard.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
