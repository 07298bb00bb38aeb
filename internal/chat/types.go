package chat

// Message roles accepted on the wire. The system role is never accepted from
// callers; the handler synthesizes its own system message per request.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the POST /api/chat body.
type Request struct {
	Message             string    `json:"message" validate:"required"`
	ConversationHistory []Message `json:"conversationHistory,omitempty" validate:"omitempty,dive"`
}

// Usage reports upstream token consumption.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Response is the success body for POST /api/chat.
type Response struct {
	Response string `json:"response"`
	Usage    *Usage `json:"usage,omitempty"`
}

// SanitizeHistory drops entries whose role is not user or assistant (callers
// may not smuggle in system messages) and entries with empty content.
func SanitizeHistory(history []Message) []Message {
	if len(history) == 0 {
		return nil
	}
	out := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		if m.Content == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
