// Package notify defines the notification transport boundary.  The
// worker consuming booking events builds one Message per recipient and
// pushes it through a Notifier; what "delivery" means (web push, a
// relay service, a log file in development) is the implementation's
// business.  Delivery is strictly best-effort: one recipient's failure
// never affects another's, and nothing is retried here.
package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Action is a button attached to a notification (accept / decline).
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Message is one notification to one recipient.
type Message struct {
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Data    map[string]any `json:"data,omitempty"`
	Actions []Action       `json:"actions,omitempty"`
}

// Notifier delivers a message to all of a user's registered endpoints.
type Notifier interface {
	Send(ctx context.Context, userID uint64, msg Message) error
}

// Result summarizes a fan-out: how many deliveries succeeded and the
// per-recipient failures that occurred.
type Result struct {
	Delivered int
	Failed    map[uint64]error
}

// FanOut dispatches msg to every recipient concurrently.  Each
// delivery runs in its own goroutine with its own error slot, so a
// slow or failing recipient cannot block or fail the rest.  Failures
// are collected, not returned as an error: the caller decides whether
// to log them (and nothing more: no retries, no rollback).
func FanOut(ctx context.Context, n Notifier, recipients []uint64, msg Message) Result {
	if n == nil || len(recipients) == 0 {
		return Result{}
	}
	errs := make([]error, len(recipients))
	var wg sync.WaitGroup
	for i, userID := range recipients {
		wg.Add(1)
		go func(i int, userID uint64) {
			defer wg.Done()
			errs[i] = n.Send(ctx, userID, msg)
		}(i, userID)
	}
	wg.Wait()

	res := Result{Failed: make(map[uint64]error)}
	for i, err := range errs {
		if err != nil {
			res.Failed[recipients[i]] = err
		} else {
			res.Delivered++
		}
	}
	return res
}

// LogNotifier appends delivery lines to logs/notifications.log.  It is
// the default transport when no real push relay is configured, and
// doubles as the audit trail in development.
type LogNotifier struct {
	mu   sync.Mutex
	path string
}

// NewLogNotifier creates a LogNotifier writing under the given
// directory (default "logs").
func NewLogNotifier(dir string) *LogNotifier {
	if dir == "" {
		dir = "logs"
	}
	return &LogNotifier{path: filepath.Join(dir, "notifications.log")}
}

// Send appends one line describing the delivery.
func (l *LogNotifier) Send(_ context.Context, userID uint64, msg Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] notify user_id=%d | title=%q | body=%q\n",
		time.Now().UTC().Format(time.RFC3339), userID, msg.Title, msg.Body)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// LogFailures writes one warning per failed recipient.
func LogFailures(res Result) {
	for userID, err := range res.Failed {
		log.Printf("notify: delivery to user %d failed: %v", userID, err)
	}
}
