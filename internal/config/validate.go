package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks Config for deployment problems. It collects all errors into
// a single joined error. A missing Groq credential is only warned about here:
// the chat handler reports it per request so the rest of the site stays up.
func (c *Config) Validate() error {
	var errs []string

	if c.Groq.APIKey == "" {
		slog.Warn("GROQ_API_KEY is empty — chat requests will fail with a configuration error")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1–65535, got %d", c.Server.Port))
	}

	if c.Chat.MaxMessageLength < 1 {
		errs = append(errs, "CHAT_MAX_MESSAGE_LENGTH must be positive")
	}
	if c.Chat.MaxHistoryLength < 1 {
		errs = append(errs, "CHAT_MAX_HISTORY_LENGTH must be positive")
	}
	if c.RateLimit.Max < 1 {
		errs = append(errs, "RATE_LIMIT_MAX must be positive")
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, "RATE_LIMIT_WINDOW must be positive")
	}
	if c.Groq.Timeout <= 0 {
		errs = append(errs, "GROQ_TIMEOUT must be positive")
	}

	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_BACKEND must be memory or redis, got %q", c.RateLimit.Backend))
	}
	if c.RateLimit.Backend == "redis" {
		if c.Redis.Port < 1 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1–65535, got %d", c.Redis.Port))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
