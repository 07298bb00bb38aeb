package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/gabgonzales/portfolio-api/internal/api"
	"github.com/gabgonzales/portfolio-api/internal/completion"
	"github.com/gabgonzales/portfolio-api/internal/metrics"
	"github.com/gabgonzales/portfolio-api/internal/persona"
	"github.com/gabgonzales/portfolio-api/internal/ratelimit"
)

const maxBodyBytes = 1 << 20

// Options is the deployment policy for the chat endpoint.
type Options struct {
	MaxMessageLength int
	MaxHistoryLength int
	Timeout          time.Duration
	// HasCredential is false when the completion-service key is missing from
	// the environment; requests then fail fast without an upstream call.
	HasCredential bool
	// Development includes upstream diagnostic detail in error responses.
	Development bool
}

// Handler serves POST /api/chat. Stateless per request except for the shared
// rate-limit store.
type Handler struct {
	opts     Options
	profile  *persona.Profile
	limiter  ratelimit.Store
	client   completion.Client
	validate *validator.Validate
}

func NewHandler(opts Options, profile *persona.Profile, limiter ratelimit.Store, client completion.Client) *Handler {
	return &Handler{
		opts:     opts,
		profile:  profile,
		limiter:  limiter,
		client:   client,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Method check
	if r.Method != http.MethodPost {
		api.ErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Rate check, before anything that could cost an upstream call.
	clientKey := ratelimit.ClientKey(r)
	res, err := h.limiter.RecordHit(r.Context(), clientKey)
	if err != nil {
		// Fail open: a broken limiter should not take the chat down.
		slog.Warn("rate limiter error, failing open", "error", err, "client", clientKey)
		res = ratelimit.Result{Allowed: true, Limit: math.MaxInt, Remaining: 0}
	} else {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	}

	if !res.Allowed {
		metrics.ChatRateLimitedTotal.Inc()
		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(retryAfter))
		api.Error(w, http.StatusTooManyRequests, api.ErrorBody{
			Error:      "Rate limit exceeded",
			Details:    fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter),
			RetryAfter: retryAfter,
		})
		return
	}

	// Credential check
	if !h.opts.HasCredential {
		slog.Error("chat request rejected: GROQ_API_KEY is not configured")
		api.Error(w, http.StatusInternalServerError, api.ErrorBody{
			Error:   "AI service is not configured",
			Details: "The completion service credential is missing. Contact the site operator.",
		})
		return
	}

	// Body parse
	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.ErrorMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	// Validate
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		api.ErrorMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	if n := utf8.RuneCountInString(msg); n > h.opts.MaxMessageLength {
		api.Error(w, http.StatusBadRequest, api.ErrorBody{
			Error:          "Message too long",
			Details:        fmt.Sprintf("Message exceeds maximum length of %d characters. Please shorten your message.", h.opts.MaxMessageLength),
			MaxLength:      h.opts.MaxMessageLength,
			ReceivedLength: n,
		})
		return
	}

	if len(req.ConversationHistory) > h.opts.MaxHistoryLength {
		api.Error(w, http.StatusBadRequest, api.ErrorBody{
			Error:   "Conversation history too long",
			Details: fmt.Sprintf("Maximum %d messages allowed in conversation history.", h.opts.MaxHistoryLength),
		})
		return
	}

	if DetectInjection(msg) {
		slog.Warn("potential prompt injection in message", "client", clientKey)
		api.Error(w, http.StatusBadRequest, api.ErrorBody{
			Error:   "Invalid message format",
			Details: "Your message contains patterns that are not allowed. Please rephrase your question.",
		})
		return
	}
	for _, item := range req.ConversationHistory {
		if DetectInjection(item.Content) {
			slog.Warn("potential prompt injection in history", "client", clientKey)
			api.Error(w, http.StatusBadRequest, api.ErrorBody{
				Error:   "Invalid conversation history",
				Details: "Your conversation history contains patterns that are not allowed.",
			})
			return
		}
	}

	// Forward
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.Timeout)
	defer cancel()

	result, err := h.client.CreateChatCompletion(ctx, toCompletionMessages(BuildMessages(h.profile, req.ConversationHistory, msg)))
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	metrics.ChatCompletionsTotal.WithLabelValues("success").Inc()

	text := result.Text
	if text == "" {
		text = "Sorry, I could not generate a response."
	}
	api.JSON(w, http.StatusOK, Response{Response: text, Usage: &Usage{
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
	}})
}

func toCompletionMessages(msgs []Message) []completion.Message {
	out := make([]completion.Message, len(msgs))
	for i, m := range msgs {
		out[i] = completion.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// writeUpstreamError maps a classified completion error onto the response
// taxonomy. The credential itself is never echoed; full detail goes to the
// server log only, with the development mode as the one exception.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	var cerr *completion.Error
	if !errors.As(err, &cerr) {
		cerr = &completion.Error{Kind: completion.KindUnknown}
	}

	slog.Error("completion service error", "kind", cerr.Kind.String(), "error", err)
	metrics.ChatCompletionsTotal.WithLabelValues(cerr.Kind.String()).Inc()

	var status int
	var body api.ErrorBody

	switch cerr.Kind {
	case completion.KindUnauthorized:
		status = http.StatusUnauthorized
		body = api.ErrorBody{
			Error:   "Invalid API key",
			Details: "The completion service rejected the configured credential. Contact the site operator.",
		}
	case completion.KindRateLimited:
		status = http.StatusTooManyRequests
		body = api.ErrorBody{
			Error:   "Rate limit exceeded. Please try again later.",
			Details: "The AI service rate limit was exceeded. Please wait a moment before trying again.",
		}
	case completion.KindTimeout:
		status = http.StatusGatewayTimeout
		body = api.ErrorBody{
			Error:   "Request timeout",
			Details: "The request took too long to process. Please try again with a shorter message.",
		}
	case completion.KindUnreachable:
		status = http.StatusServiceUnavailable
		body = api.ErrorBody{
			Error:   "Unable to connect to AI service. Please try again later.",
			Details: "There may be a network issue or the service is temporarily unavailable.",
		}
	case completion.KindInvalidModel:
		status = http.StatusBadRequest
		body = api.ErrorBody{
			Error:   "Invalid model configuration.",
			Details: "The configured model may not be available.",
		}
	default:
		status = http.StatusInternalServerError
		body = api.ErrorBody{
			Error:   "Failed to get response from AI. Please try again.",
			Details: "Check the server logs for details.",
		}
	}

	if h.opts.Development {
		body.Details = err.Error()
	}

	api.Error(w, status, body)
}
