package ratelimit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingStore struct {
	sweeps atomic.Int32
}

func (s *countingStore) RecordHit(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}

func (s *countingStore) Sweep(context.Context) { s.sweeps.Add(1) }

func TestStartSweeper(t *testing.T) {
	store := &countingStore{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartSweeper(ctx, store, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return store.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := store.sweeps.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, store.sweeps.Load(), "no sweeps after cancel")
}
