package chat

import (
	"regexp"
	"strings"
)

// Prompt-injection heuristic. Best effort only: it catches lazy
// instruction-override phrasing, not a determined attacker. The actual
// security boundary is that the system prompt carries no secrets.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(previous|all|above)\s+instructions?`),
	regexp.MustCompile(`(?i)forget\s+(previous|all|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(previous|all|above)\s+instructions?`),
	regexp.MustCompile(`(?i)you\s+are\s+now`),
	regexp.MustCompile(`(?i)act\s+as\s+if`),
	regexp.MustCompile(`(?i)pretend\s+to\s+be`),
	regexp.MustCompile(`(?i)roleplay\s+as`),
	regexp.MustCompile(`(?i)system\s*:`),
	regexp.MustCompile(`(?i)assistant\s*:`),
	regexp.MustCompile(`(?i)user\s*:`),
	regexp.MustCompile(`(?i)\[system\]`),
	regexp.MustCompile(`(?i)\[assistant\]`),
	regexp.MustCompile(`(?i)\[user\]`),
	regexp.MustCompile(`(?i)<\|system\|>`),
	regexp.MustCompile(`(?i)<\|assistant\|>`),
	regexp.MustCompile(`(?i)<\|user\|>`),
	regexp.MustCompile(`(?i)override\s+instructions?`),
	regexp.MustCompile(`(?i)new\s+instructions?`),
	regexp.MustCompile(`(?i)follow\s+these\s+instructions?`),
	regexp.MustCompile(`(?i)execute\s+this\s+prompt`),
	regexp.MustCompile(`(?i)jailbreak`),
	regexp.MustCompile(`(?i)bypass`),
	regexp.MustCompile(`(?i)hack`),
}

// DetectInjection reports whether msg looks like a prompt-injection attempt.
// Which pattern fired is deliberately not reported; callers must not echo it.
func DetectInjection(msg string) bool {
	for _, p := range injectionPatterns {
		if p.MatchString(msg) {
			return true
		}
	}

	// A code fence next to role keywords is a common smuggling vehicle.
	if strings.Contains(msg, "```") {
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "system") || strings.Contains(lower, "assistant") {
			return true
		}
	}

	return false
}
