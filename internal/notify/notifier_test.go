package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// flakyNotifier fails for a fixed set of recipients and records every
// attempted delivery.
type flakyNotifier struct {
	mu       sync.Mutex
	fail     map[uint64]bool
	attempts []uint64
	delay    time.Duration
}

func (f *flakyNotifier) Send(_ context.Context, userID uint64, _ Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.attempts = append(f.attempts, userID)
	f.mu.Unlock()
	if f.fail[userID] {
		return errors.New("endpoint gone")
	}
	return nil
}

func TestFanOut_AllDelivered(t *testing.T) {
	n := &flakyNotifier{}
	res := FanOut(context.Background(), n, []uint64{1, 2, 3}, Message{Title: "hi"})

	assert.Equal(t, 3, res.Delivered)
	assert.Empty(t, res.Failed)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, n.attempts)
}

func TestFanOut_FailureIsolation(t *testing.T) {
	n := &flakyNotifier{fail: map[uint64]bool{2: true}}
	res := FanOut(context.Background(), n, []uint64{1, 2, 3}, Message{Title: "hi"})

	// One failure, but every recipient was still attempted.
	assert.Equal(t, 2, res.Delivered)
	assert.Len(t, res.Failed, 1)
	assert.Contains(t, res.Failed, uint64(2))
	assert.ElementsMatch(t, []uint64{1, 2, 3}, n.attempts)
}

func TestFanOut_Concurrent(t *testing.T) {
	// 20 recipients at 10ms each finish far sooner than 200ms when
	// dispatched concurrently.
	n := &flakyNotifier{delay: 10 * time.Millisecond}
	recipients := make([]uint64, 20)
	for i := range recipients {
		recipients[i] = uint64(i + 1)
	}

	start := time.Now()
	res := FanOut(context.Background(), n, recipients, Message{Title: "hi"})
	elapsed := time.Since(start)

	assert.Equal(t, 20, res.Delivered)
	assert.Less(t, elapsed, 150*time.Millisecond)
}

func TestFanOut_NilAndEmpty(t *testing.T) {
	res := FanOut(context.Background(), nil, []uint64{1}, Message{})
	assert.Zero(t, res.Delivered)
	assert.Empty(t, res.Failed)

	n := &flakyNotifier{}
	res = FanOut(context.Background(), n, nil, Message{})
	assert.Zero(t, res.Delivered)
	assert.Empty(t, n.attempts)
}
