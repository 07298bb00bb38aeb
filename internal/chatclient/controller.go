package chatclient

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabgonzales/portfolio-api/internal/chat"
)

// State is the controller's visible activity.
type State int

const (
	StateIdle State = iota
	// StateThinking covers the in-flight request, before any text is shown.
	StateThinking
	// StateTyping covers the playback of an already-complete reply.
	StateTyping
)

// Submit gate errors. All of them mean "no network call was made".
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrTooLong      = errors.New("message too long")
	ErrBusy         = errors.New("a request is already in flight")
	ErrClosed       = errors.New("controller is closed")
)

// Events are optional observer callbacks. They are invoked from the
// controller's worker goroutine; keep them fast and non-blocking.
type Events struct {
	// OnState fires on every idle/thinking/typing transition.
	OnState func(State)
	// OnTyping fires with each successive visible prefix during playback.
	OnTyping func(prefix string)
	// OnMessage fires when a complete message is appended to the transcript.
	OnMessage func(chat.Message)
	// OnTurnDone fires exactly once per submission, after the assistant
	// message (or error bubble) has been appended.
	OnTurnDone func()
}

// Controller owns one conversation transcript and the request/playback
// lifecycle. At most one submission is in flight at a time; a second Submit
// while busy is a gated no-op.
type Controller struct {
	client  *Client
	tw      *Typewriter
	events  Events
	maxLen  int
	sleeper func(time.Duration)

	// The state below is confined to the event-loop goroutine model of the
	// widget: all mutation happens under ops, a one-slot serialization
	// channel, see run().
	ops chan func()

	messages []chat.Message
	inFlight bool
	closed   bool
	state    State
}

// NewController creates a controller whose transcript is seeded with the
// assistant greeting. maxLen caps the visitor message length in runes.
func NewController(client *Client, greeting string, maxLen int, events Events) *Controller {
	c := &Controller{
		client:  client,
		tw:      NewTypewriter(DefaultDelays()),
		events:  events,
		maxLen:  maxLen,
		sleeper: time.Sleep,
		ops:     make(chan func(), 16),
	}
	if greeting != "" {
		c.messages = append(c.messages, chat.Message{Role: chat.RoleAssistant, Content: greeting})
	}
	go c.run()
	return c
}

// WithTypewriter overrides the playback pacing. Test hook.
func (c *Controller) WithTypewriter(tw *Typewriter) *Controller {
	c.tw = tw
	return c
}

// WithSleeper overrides the playback wait. Test hook.
func (c *Controller) WithSleeper(f func(time.Duration)) *Controller {
	c.sleeper = f
	return c
}

// run serializes all state mutation, the Go analogue of the widget's
// single-threaded event loop.
func (c *Controller) run() {
	for op := range c.ops {
		op()
	}
}

// do runs op on the controller loop and waits for it.
func (c *Controller) do(op func()) {
	done := make(chan struct{})
	c.ops <- func() {
		op()
		close(done)
	}
	<-done
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []chat.Message {
	var out []chat.Message
	c.do(func() {
		out = append(out, c.messages...)
	})
	return out
}

// State returns the current activity state.
func (c *Controller) State() State {
	var s State
	c.do(func() { s = c.state })
	return s
}

// Close tears the controller down. The result of an outstanding request is
// discarded; no transcript mutation happens after Close returns.
func (c *Controller) Close() {
	c.do(func() { c.closed = true })
}

func (c *Controller) setState(s State) {
	c.state = s
	if c.events.OnState != nil {
		c.events.OnState(s)
	}
}

func (c *Controller) append(m chat.Message) {
	c.messages = append(c.messages, m)
	if c.events.OnMessage != nil {
		c.events.OnMessage(m)
	}
}

// Submit validates text and, when the controller is idle, appends the user
// message and fires the request. The returned error reports gate failures
// only; request failures surface as a synthetic assistant bubble.
func (c *Controller) Submit(ctx context.Context, text string) error {
	msg := strings.TrimSpace(text)
	if msg == "" {
		return ErrEmptyMessage
	}
	if c.maxLen > 0 && utf8.RuneCountInString(msg) > c.maxLen {
		return ErrTooLong
	}

	var gateErr error
	var history []chat.Message
	c.do(func() {
		switch {
		case c.closed:
			gateErr = ErrClosed
		case c.inFlight:
			gateErr = ErrBusy
		default:
			c.inFlight = true
			// History excludes the message being sent; system entries are
			// never present in the transcript in the first place.
			history = append(history, c.messages...)
			c.append(chat.Message{Role: chat.RoleUser, Content: msg})
			c.setState(StateThinking)
		}
	})
	if gateErr != nil {
		return gateErr
	}

	go c.exchange(ctx, msg, history)
	return nil
}

// exchange performs the network call and playback for one turn.
func (c *Controller) exchange(ctx context.Context, msg string, history []chat.Message) {
	resp, err := c.client.Send(ctx, msg, history)

	if err != nil {
		c.do(func() {
			if c.closed {
				return
			}
			c.append(chat.Message{
				Role:    chat.RoleAssistant,
				Content: "⚠ " + err.Error() + "\n\nPlease try again.",
			})
			c.inFlight = false
			c.setState(StateIdle)
			if c.events.OnTurnDone != nil {
				c.events.OnTurnDone()
			}
		})
		return
	}

	var pb *Playback
	var dead bool
	c.do(func() {
		if c.closed {
			dead = true
			return
		}
		c.setState(StateTyping)
		pb = c.tw.Start(resp.Response)
	})
	if dead {
		return
	}

	for {
		prefix, delay, ok := pb.Next()
		if !ok {
			break
		}
		if c.events.OnTyping != nil {
			c.events.OnTyping(prefix)
		}
		c.sleeper(delay)
	}

	c.do(func() {
		if c.closed {
			return
		}
		// The transcript holds the final complete text regardless of how the
		// playback was paced or whether it was superseded.
		c.append(chat.Message{Role: chat.RoleAssistant, Content: resp.Response})
		c.inFlight = false
		c.setState(StateIdle)
		if c.events.OnTurnDone != nil {
			c.events.OnTurnDone()
		}
	})
}
