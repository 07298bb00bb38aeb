package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	Groq      GroqConfig
	Chat      ChatConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Persona   PersonaConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	Env                string
	StaticDir          string
	CORSAllowedOrigins []string
}

// Development reports whether error responses may carry diagnostic detail.
func (c ServerConfig) Development() bool {
	return c.Env == "development"
}

type GroqConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int64
	TopP        float64
	Timeout     time.Duration
}

type ChatConfig struct {
	MaxMessageLength int
	MaxHistoryLength int
}

type RateLimitConfig struct {
	Max           int
	Window        time.Duration
	SweepInterval time.Duration
	// Backend is "memory" (default) or "redis".
	Backend string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type PersonaConfig struct {
	File string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      k.String("server.host"),
			Port:      k.Int("server.port"),
			Env:       k.String("server.env"),
			StaticDir: k.String("server.static.dir"),
		},
		Groq: GroqConfig{
			APIKey:      k.String("groq.api.key"),
			Model:       k.String("groq.model"),
			Temperature: k.Float64("groq.temperature"),
			MaxTokens:   int64(k.Int("groq.max.tokens")),
			TopP:        k.Float64("groq.top.p"),
		},
		Chat: ChatConfig{
			MaxMessageLength: k.Int("chat.max.message.length"),
			MaxHistoryLength: k.Int("chat.max.history.length"),
		},
		RateLimit: RateLimitConfig{
			Max:     k.Int("rate.limit.max"),
			Backend: k.String("rate.limit.backend"),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		Persona: PersonaConfig{
			File: k.String("persona.file"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	if origins := k.String("cors.allowed.origins"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSAllowedOrigins = append(cfg.Server.CORSAllowedOrigins, o)
			}
		}
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "production"
	}
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Groq.Temperature == 0 {
		cfg.Groq.Temperature = 0.8
	}
	if cfg.Groq.MaxTokens == 0 {
		cfg.Groq.MaxTokens = 1024
	}
	if cfg.Groq.TopP == 0 {
		cfg.Groq.TopP = 1.0
	}
	if cfg.Chat.MaxMessageLength == 0 {
		cfg.Chat.MaxMessageLength = 1000
	}
	if cfg.Chat.MaxHistoryLength == 0 {
		cfg.Chat.MaxHistoryLength = 20
	}
	if cfg.RateLimit.Max == 0 {
		cfg.RateLimit.Max = 10
	}
	if cfg.RateLimit.Backend == "" {
		cfg.RateLimit.Backend = "memory"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	cfg.Groq.Timeout, err = parseDuration(k, "groq.timeout", "30s")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.Window, err = parseDuration(k, "rate.limit.window", "60s")
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.SweepInterval, err = parseDuration(k, "rate.limit.sweep.interval", "5m")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(k *koanf.Koanf, key, fallback string) (time.Duration, error) {
	s := k.String(key)
	if s == "" {
		s = fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
