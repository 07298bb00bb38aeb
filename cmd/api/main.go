package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/gabgonzales/portfolio-api/internal/api"
	"github.com/gabgonzales/portfolio-api/internal/chat"
	"github.com/gabgonzales/portfolio-api/internal/completion"
	"github.com/gabgonzales/portfolio-api/internal/config"
	"github.com/gabgonzales/portfolio-api/internal/persona"
	"github.com/gabgonzales/portfolio-api/internal/ratelimit"
	"github.com/gabgonzales/portfolio-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("validating config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persona
	profile, err := persona.Load(cfg.Persona.File)
	if err != nil {
		slog.Error("loading persona", "error", err)
		os.Exit(1)
	}
	slog.Info("persona loaded", "name", profile.Name)

	// Rate limiting
	var limiter ratelimit.Store
	switch cfg.RateLimit.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Error("pinging redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisStore(client, cfg.RateLimit.Max, cfg.RateLimit.Window)
		slog.Info("rate limiting via redis", "addr", cfg.Redis.Addr())
	default:
		limiter = ratelimit.NewMemoryStore(cfg.RateLimit.Max, cfg.RateLimit.Window)
	}
	ratelimit.StartSweeper(ctx, limiter, cfg.RateLimit.SweepInterval)

	// Completion service
	groq := completion.NewGroqClient(cfg.Groq.APIKey, completion.Params{
		Model:       cfg.Groq.Model,
		Temperature: cfg.Groq.Temperature,
		MaxTokens:   cfg.Groq.MaxTokens,
		TopP:        cfg.Groq.TopP,
	})

	chatHandler := chat.NewHandler(chat.Options{
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		MaxHistoryLength: cfg.Chat.MaxHistoryLength,
		Timeout:          cfg.Groq.Timeout,
		HasCredential:    cfg.Groq.APIKey != "",
		Development:      cfg.Server.Development(),
	}, profile, limiter, groq)

	router := api.NewRouter(api.RouterConfig{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		StaticDir:          cfg.Server.StaticDir,
		Profile:            profile,
		ChatHandler:        chatHandler,
	})

	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
