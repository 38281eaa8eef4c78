package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type recordingWriter struct {
	payloads []string
	err      error
}

func (w *recordingWriter) WriteMessage(messageType int, data []byte) error {
	if w.err != nil {
		return w.err
	}
	w.payloads = append(w.payloads, string(data))
	return nil
}

func runForward(t *testing.T, w messageWriter, ch chan *redis.Message, clientClosed chan struct{}) chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardNotifications(context.Background(), w, ch, clientClosed)
	}()
	return done
}

func waitDone(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forward loop did not return")
	}
}

func TestForwardNotificationsDeliversPayloads(t *testing.T) {
	w := &recordingWriter{}
	ch := make(chan *redis.Message, 2)
	clientClosed := make(chan struct{})
	done := runForward(t, w, ch, clientClosed)

	ch <- &redis.Message{Payload: `{"title":"New club added"}`}
	ch <- &redis.Message{Payload: `{"title":"New event in Chess Club"}`}
	close(ch)
	waitDone(t, done)

	if len(w.payloads) != 2 {
		t.Fatalf("payloads = %d, want 2", len(w.payloads))
	}
	if w.payloads[0] != `{"title":"New club added"}` {
		t.Fatalf("payload = %q", w.payloads[0])
	}
}

func TestForwardNotificationsStopsOnClosedStream(t *testing.T) {
	// A dropped Redis connection closes the channel; the loop must return
	// instead of reading nil messages.
	w := &recordingWriter{}
	ch := make(chan *redis.Message)
	clientClosed := make(chan struct{})
	done := runForward(t, w, ch, clientClosed)

	close(ch)
	waitDone(t, done)

	if len(w.payloads) != 0 {
		t.Fatalf("payloads = %d, want 0", len(w.payloads))
	}
}

func TestForwardNotificationsStopsWhenClientHangsUp(t *testing.T) {
	w := &recordingWriter{}
	ch := make(chan *redis.Message)
	clientClosed := make(chan struct{})
	done := runForward(t, w, ch, clientClosed)

	close(clientClosed)
	waitDone(t, done)
}

func TestForwardNotificationsStopsOnWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broken pipe")}
	ch := make(chan *redis.Message, 1)
	clientClosed := make(chan struct{})
	done := runForward(t, w, ch, clientClosed)

	ch <- &redis.Message{Payload: "{}"}
	waitDone(t, done)
}
