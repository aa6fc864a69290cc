package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestPumpOrderEventsForwardsPayloads(t *testing.T) {
	ch := make(chan *redis.Message, 2)
	ch <- &redis.Message{Payload: `{"status":"PENDING"}`}
	ch <- &redis.Message{Payload: `{"status":"COMPLETE"}`}
	close(ch)

	var got []string
	pumpOrderEvents(ch, nil, func(p []byte) error {
		got = append(got, string(p))
		return nil
	})

	if len(got) != 2 {
		t.Fatalf("forwarded %d payloads, want 2", len(got))
	}
	if got[1] != `{"status":"COMPLETE"}` {
		t.Errorf("payload = %q", got[1])
	}
}

func TestPumpOrderEventsStopsWhenSubscriberGone(t *testing.T) {
	ch := make(chan *redis.Message)
	done := make(chan struct{})
	close(done)

	finished := make(chan struct{})
	go func() {
		pumpOrderEvents(ch, done, func([]byte) error { return nil })
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop after the subscriber went away")
	}
}

func TestPumpOrderEventsStopsOnWriteError(t *testing.T) {
	ch := make(chan *redis.Message, 2)
	ch <- &redis.Message{Payload: "a"}
	ch <- &redis.Message{Payload: "b"}

	writes := 0
	pumpOrderEvents(ch, nil, func([]byte) error {
		writes++
		return errors.New("client closed")
	})

	if writes != 1 {
		t.Errorf("writes = %d, want 1 (stop on first failed write)", writes)
	}
}
