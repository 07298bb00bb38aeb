// Package completion wraps the hosted chat-completion service behind a small
// interface so the handler never touches SDK types and tests can substitute
// a fake.
package completion

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gabgonzales/portfolio-api/internal/metrics"
)

var errNoChoices = errors.New("no choices in response")

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1/"

// Message is one conversation turn as sent upstream. Role is "system",
// "user" or "assistant"; anything else is forwarded as a user turn.
type Message struct {
	Role    string
	Content string
}

// Usage reports upstream token consumption for one call.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Result is a completed generation.
type Result struct {
	Text  string
	Usage Usage
}

// Client creates chat completions from an ordered message list.
type Client interface {
	CreateChatCompletion(ctx context.Context, messages []Message) (*Result, error)
}

// Params is the deployment policy for outbound calls.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	TopP        float64
}

// GroqClient implements Client against Groq via the OpenAI SDK.
type GroqClient struct {
	client *openai.Client
	params Params
}

// NewGroqClient creates a client for the given credential and policy.
// Extra options (custom HTTP client, test base URLs) can be appended.
func NewGroqClient(apiKey string, params Params, opts ...option.RequestOption) *GroqClient {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(DefaultBaseURL),
		option.WithMaxRetries(0),
	}
	return &GroqClient{
		client: openai.NewClient(append(base, opts...)...),
		params: params,
	}
}

func (c *GroqClient) toSDKMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// CreateChatCompletion performs one non-streaming completion call. Errors are
// always of type *Error with the Kind decided here.
func (c *GroqClient) CreateChatCompletion(ctx context.Context, messages []Message) (*Result, error) {
	start := time.Now()

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F(c.toSDKMessages(messages)),
		Model:       openai.F(c.params.Model),
		Temperature: openai.Float(c.params.Temperature),
		MaxTokens:   openai.Int(c.params.MaxTokens),
		TopP:        openai.Float(c.params.TopP),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindUnknown, cause: errNoChoices}
	}

	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())

	return &Result{
		Text: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
