package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabgonzales/portfolio-api/internal/chat"
)

const testGreeting = "Hey there! I'm Gabriel."

func instantController(client *Client, events Events) *Controller {
	return NewController(client, testGreeting, 1000, events).
		WithTypewriter(NewTypewriter(DefaultDelays()).WithJitter(func() float64 { return 0 })).
		WithSleeper(func(time.Duration) {})
}

// waitTurn blocks until OnTurnDone fires or the test deadline hits.
func waitTurn(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("turn did not complete")
	}
}

func TestController_GreetingSeedsTranscript(t *testing.T) {
	c := instantController(NewClient("http://localhost:0"), Events{})
	defer c.Close()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, chat.Message{Role: chat.RoleAssistant, Content: testGreeting}, msgs[0])
	assert.Equal(t, StateIdle, c.State())
}

func TestController_SubmitGates(t *testing.T) {
	c := instantController(NewClient("http://localhost:0"), Events{})
	defer c.Close()

	assert.ErrorIs(t, c.Submit(context.Background(), "   "), ErrEmptyMessage)

	long := make([]rune, 1001)
	for i := range long {
		long[i] = 'x'
	}
	assert.ErrorIs(t, c.Submit(context.Background(), string(long)), ErrTooLong)

	// Neither gate failure touched the transcript.
	assert.Len(t, c.Messages(), 1)
}

func TestController_SuccessfulTurn(t *testing.T) {
	var gotReq chat.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chat.Response{Response: "I write Go."})
	}))
	defer ts.Close()

	done := make(chan struct{})
	var prefixes []string
	var states []State
	c := instantController(NewClient(ts.URL), Events{
		OnState:    func(s State) { states = append(states, s) },
		OnTyping:   func(p string) { prefixes = append(prefixes, p) },
		OnTurnDone: func() { close(done) },
	})
	defer c.Close()

	require.NoError(t, c.Submit(context.Background(), "what do you do?"))
	waitTurn(t, done)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, chat.RoleUser, msgs[1].Role)
	assert.Equal(t, "what do you do?", msgs[1].Content)
	assert.Equal(t, chat.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "I write Go.", msgs[2].Content)
	assert.Equal(t, StateIdle, c.State())

	// History sent upstream is the transcript before this submission.
	assert.Equal(t, "what do you do?", gotReq.Message)
	require.Len(t, gotReq.ConversationHistory, 1)
	assert.Equal(t, testGreeting, gotReq.ConversationHistory[0].Content)

	// Playback walked the full reply and states moved thinking -> typing -> idle.
	require.NotEmpty(t, prefixes)
	assert.Equal(t, "I write Go.", prefixes[len(prefixes)-1])
	assert.Equal(t, []State{StateThinking, StateTyping, StateIdle}, states)
}

func TestController_SingleInFlight(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		json.NewEncoder(w).Encode(chat.Response{Response: "done"})
	}))
	defer ts.Close()

	done := make(chan struct{})
	c := instantController(NewClient(ts.URL), Events{OnTurnDone: func() { close(done) }})
	defer c.Close()

	require.NoError(t, c.Submit(context.Background(), "first"))

	// While the first request is held open, a second submit is refused and
	// leaves no trace in the transcript.
	assert.ErrorIs(t, c.Submit(context.Background(), "second"), ErrBusy)

	close(release)
	waitTurn(t, done)

	assert.Equal(t, int32(1), requests.Load())
	for _, m := range c.Messages() {
		assert.NotEqual(t, "second", m.Content)
	}
}

func TestController_ErrorBecomesAssistantBubble(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Unable to connect to AI service. Please try again later."}`))
	}))
	defer ts.Close()

	done := make(chan struct{})
	c := instantController(NewClient(ts.URL), Events{OnTurnDone: func() { close(done) }})
	defer c.Close()

	require.NoError(t, c.Submit(context.Background(), "hello"))
	waitTurn(t, done)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	last := msgs[2]
	assert.Equal(t, chat.RoleAssistant, last.Role)
	assert.Equal(t, "⚠ Unable to connect to AI service. Please try again later.\n\nPlease try again.", last.Content)
	assert.Equal(t, StateIdle, c.State())

	// The chat is usable again after an error turn.
	assert.NotErrorIs(t, c.Submit(context.Background(), ""), ErrBusy)
}

func TestController_BadServerResponseBubble(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	done := make(chan struct{})
	c := instantController(NewClient(ts.URL), Events{OnTurnDone: func() { close(done) }})
	defer c.Close()

	require.NoError(t, c.Submit(context.Background(), "hello"))
	waitTurn(t, done)

	msgs := c.Messages()
	assert.Equal(t, "⚠ Bad server response.\n\nPlease try again.", msgs[len(msgs)-1].Content)
}

func TestController_CloseDiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(chat.Response{Response: "too late"})
	}))
	defer ts.Close()

	c := instantController(NewClient(ts.URL), Events{})

	require.NoError(t, c.Submit(context.Background(), "hello"))
	c.Close()
	close(release)

	assert.ErrorIs(t, c.Submit(context.Background(), "again"), ErrClosed)

	// Give the discarded exchange a moment; the transcript must not grow.
	time.Sleep(100 * time.Millisecond)
	msgs := c.Messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.NotEqual(t, "too late", m.Content)
	}
}
