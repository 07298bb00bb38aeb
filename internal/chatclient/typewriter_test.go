package chatclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroJitter() float64 { return 0 }

func drain(p *Playback) (prefixes []string, delays []time.Duration) {
	for {
		prefix, delay, ok := p.Next()
		if !ok {
			return
		}
		prefixes = append(prefixes, prefix)
		delays = append(delays, delay)
	}
}

func TestPlayback_RevealsExactText(t *testing.T) {
	tw := NewTypewriter(DefaultDelays()).WithJitter(zeroJitter)

	for _, text := range []string{
		"Hi!",
		"Hey there! 👋 I'm Gabriel.",
		"multi\nline, with clauses; and ends.",
		"é é é",
	} {
		p := tw.Start(text)
		prefixes, _ := drain(p)

		runes := []rune(text)
		require.Len(t, prefixes, len(runes), "one reveal per rune for %q", text)
		for i, prefix := range prefixes {
			assert.Equal(t, string(runes[:i+1]), prefix)
		}
		assert.Equal(t, text, prefixes[len(prefixes)-1])
		assert.True(t, p.Done())

		// A finished playback yields nothing more.
		_, _, ok := p.Next()
		assert.False(t, ok)
	}
}

func TestPlayback_EmptyText(t *testing.T) {
	tw := NewTypewriter(DefaultDelays())
	p := tw.Start("")

	assert.True(t, p.Done())
	_, _, ok := p.Next()
	assert.False(t, ok)
}

func TestPlayback_DelayClasses(t *testing.T) {
	d := DefaultDelays()
	tw := NewTypewriter(d).WithJitter(zeroJitter)

	p := tw.Start("a. ,\nb")
	_, delays := drain(p)

	require.Len(t, delays, 6)
	assert.Equal(t, d.Base, delays[0], "letter")
	assert.Equal(t, d.Sentence, delays[1], "sentence end")
	assert.Equal(t, d.Space, delays[2], "space")
	assert.Equal(t, d.Clause, delays[3], "clause")
	assert.Equal(t, d.Newline, delays[4], "newline")
	assert.Equal(t, d.Base, delays[5], "letter")
}

func TestPlayback_JitterBounds(t *testing.T) {
	d := DefaultDelays()
	tw := NewTypewriter(d).WithJitter(func() float64 { return 1 })

	p := tw.Start("a.")
	_, delays := drain(p)

	require.Len(t, delays, 2)
	assert.Equal(t, d.Base+d.BaseJitter, delays[0])
	assert.Equal(t, d.Sentence+d.SentenceJitter, delays[1])
}

func TestPlayback_SupersededStops(t *testing.T) {
	tw := NewTypewriter(DefaultDelays()).WithJitter(zeroJitter)

	first := tw.Start("first response")
	_, _, ok := first.Next()
	require.True(t, ok)

	second := tw.Start("second")
	assert.True(t, first.Stale())
	assert.False(t, second.Stale())

	// The superseded playback stops revealing mid-string.
	_, _, ok = first.Next()
	assert.False(t, ok)

	prefixes, _ := drain(second)
	assert.Equal(t, "second", prefixes[len(prefixes)-1])
}
