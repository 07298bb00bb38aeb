package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// Kind classifies an upstream failure. Classification happens exactly once,
// here at the boundary; callers switch on Kind instead of re-sniffing error
// strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindRateLimited
	KindTimeout
	KindUnreachable
	KindInvalidModel
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindUnreachable:
		return "unreachable"
	case KindInvalidModel:
		return "invalid_model"
	default:
		return "unknown"
	}
}

// Error is the closed error type returned by this package.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("completion service: %s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// classify maps an SDK or transport error onto a Kind.
func classify(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, cause: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindUnauthorized, cause: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, cause: err}
		case http.StatusNotFound:
			return &Error{Kind: KindInvalidModel, cause: err}
		case http.StatusBadRequest:
			if strings.Contains(strings.ToLower(err.Error()), "model") {
				return &Error{Kind: KindInvalidModel, cause: err}
			}
			return &Error{Kind: KindUnknown, cause: err}
		default:
			return &Error{Kind: KindUnknown, cause: err}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &Error{Kind: KindTimeout, cause: err}
		}
		return &Error{Kind: KindUnreachable, cause: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindUnreachable, cause: err}
	}

	return &Error{Kind: KindUnknown, cause: err}
}
