package chatclient

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DelayProfile controls per-character reveal pacing. Values mirror the feel
// of a person typing: sentence ends pause longest, clauses pause a bit,
// spaces barely at all.
type DelayProfile struct {
	Base           time.Duration
	BaseJitter     time.Duration
	Sentence       time.Duration
	SentenceJitter time.Duration
	Clause         time.Duration
	ClauseJitter   time.Duration
	Space          time.Duration
	Newline        time.Duration
}

// DefaultDelays returns the standard pacing.
func DefaultDelays() DelayProfile {
	return DelayProfile{
		Base:           14 * time.Millisecond,
		BaseJitter:     10 * time.Millisecond,
		Sentence:       90 * time.Millisecond,
		SentenceJitter: 60 * time.Millisecond,
		Clause:         45 * time.Millisecond,
		ClauseJitter:   20 * time.Millisecond,
		Space:          6 * time.Millisecond,
		Newline:        52 * time.Millisecond,
	}
}

// Typewriter creates playbacks of complete response strings. Starting a new
// playback atomically invalidates the previous one, so two playbacks never
// race on the same visible text.
type Typewriter struct {
	mu     sync.Mutex
	gen    uint64
	delays DelayProfile
	jitter func() float64
}

// NewTypewriter creates a typewriter with the given pacing.
func NewTypewriter(delays DelayProfile) *Typewriter {
	return &Typewriter{delays: delays, jitter: rand.Float64}
}

// WithJitter overrides the randomness source. Test hook.
func (t *Typewriter) WithJitter(f func() float64) *Typewriter {
	t.jitter = f
	return t
}

// Playback reveals successive rune prefixes of a single string. Not safe for
// concurrent use; one consumer drives it via Next.
type Playback struct {
	t     *Typewriter
	gen   uint64
	text  string
	runes []rune
	pos   int
}

// Start begins a new playback of text, superseding any playback still
// running from a previous call.
func (t *Typewriter) Start(text string) *Playback {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	return &Playback{t: t, gen: t.gen, text: text, runes: []rune(text)}
}

// Stale reports whether this playback has been superseded by a newer Start.
func (p *Playback) Stale() bool {
	p.t.mu.Lock()
	defer p.t.mu.Unlock()
	return p.gen != p.t.gen
}

// Done reports whether every rune has been revealed.
func (p *Playback) Done() bool {
	return p.pos >= len(p.runes)
}

// Next reveals one more rune. It returns the visible prefix so far and the
// delay to wait before the following reveal. ok is false once the playback
// is finished or has been superseded; after completion the last returned
// prefix equals the input string exactly.
func (p *Playback) Next() (prefix string, delay time.Duration, ok bool) {
	if p.Done() || p.Stale() {
		return "", 0, false
	}

	c := p.runes[p.pos]
	p.pos++
	prefix = string(p.runes[:p.pos])

	d := p.t.delays
	switch {
	case strings.ContainsRune(".!?", c):
		delay = p.withJitter(d.Sentence, d.SentenceJitter)
	case strings.ContainsRune(",;:", c):
		delay = p.withJitter(d.Clause, d.ClauseJitter)
	case c == ' ':
		delay = d.Space
	case c == '\n':
		delay = d.Newline
	default:
		delay = p.withJitter(d.Base, d.BaseJitter)
	}
	return prefix, delay, true
}

func (p *Playback) withJitter(base, jitter time.Duration) time.Duration {
	p.t.mu.Lock()
	f := p.t.jitter()
	p.t.mu.Unlock()
	return base + time.Duration(f*float64(jitter))
}
