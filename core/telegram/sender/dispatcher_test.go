package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1})

	var ran atomic.Int32
	done := make(chan struct{})
	err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		ran.Add(1)
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	d.Close()

	if ran.Load() != 1 {
		t.Fatalf("expected 1 run, got %d", ran.Load())
	}
	if d.ErrorCount() != 0 {
		t.Fatalf("unexpected errors: %d", d.ErrorCount())
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 4, Workers: 1, MaxRetries: 0})

	if err := d.Enqueue(context.Background(), "send.text", "sendMessage", func() error {
		return errors.New("telegram: Bad Request (400)")
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()

	if d.ErrorCount() != 1 {
		t.Fatalf("expected 1 failure, got %d", d.ErrorCount())
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	defer d.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	_ = d.Enqueue(context.Background(), "a", "", func() error {
		close(started)
		<-block
		return nil
	})
	<-started

	// Worker is busy; fill the buffer, then expect overflow.
	_ = d.Enqueue(context.Background(), "b", "", func() error { return nil })
	err := d.Enqueue(context.Background(), "c", "", func() error { return nil })
	close(block)

	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcherClosedQueue(t *testing.T) {
	d := NewDispatcher(Options{QueueSize: 1, Workers: 1})
	d.Close()

	err := d.Enqueue(context.Background(), "a", "", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("telegram: Internal Server Error (500)"), "http_5xx"},
		{errors.New("telegram: Forbidden (403)"), "http_4xx"},
		{errors.New("something odd"), "unknown"},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Errorf("classifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New("Post https://api.telegram.org/bot12345:AAAbbbCCC/sendMessage: timeout")
	got := sanitizeErrorMessage(err)
	if got != "Post https://api.telegram.org/bot<redacted>/sendMessage: timeout" {
		t.Fatalf("token not redacted: %q", got)
	}
}
