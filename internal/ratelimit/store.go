// Package ratelimit provides per-client request throttling for the chat
// endpoint. The store is injected into the handler so tests can drive window
// transitions with a fake clock.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Result is the outcome of recording one request against a client key.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Store tracks request counts per client key.
type Store interface {
	// RecordHit counts one request for key and reports whether it is allowed
	// under the configured limit.
	RecordHit(ctx context.Context, key string) (Result, error)

	// Sweep evicts entries that have not been touched for long enough that
	// they can never influence a decision again.
	Sweep(ctx context.Context)
}

type record struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a fixed-window in-process Store. Suitable when the process
// is the unit of deployment; state resets on restart by design.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record

	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a store allowing limit requests per window.
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*record),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) RecordHit(_ context.Context, key string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.records[key]

	// An elapsed window is equivalent to no record at all.
	if !ok || now.After(rec.resetAt) {
		s.records[key] = &record{count: 1, resetAt: now.Add(s.window)}
		return Result{Allowed: true, Limit: s.limit, Remaining: s.limit - 1}, nil
	}

	if rec.count >= s.limit {
		retry := rec.resetAt.Sub(now)
		if retry < 0 {
			retry = 0
		}
		return Result{Allowed: false, Limit: s.limit, RetryAfter: retry}, nil
	}

	rec.count++
	return Result{Allowed: true, Limit: s.limit, Remaining: s.limit - rec.count}, nil
}

// Sweep drops records stale for at least one extra window beyond expiry,
// bounding memory under sustained traffic from many distinct clients.
func (s *MemoryStore) Sweep(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.window)
	for key, rec := range s.records {
		if rec.resetAt.Before(cutoff) {
			delete(s.records, key)
		}
	}
}

// Len reports the number of tracked keys. Test hook.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ClientKey derives the rate-limit identity for a request: first entry of
// X-Forwarded-For, else X-Real-IP, else the peer address.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}
