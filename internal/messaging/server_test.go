package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = s.Publish(SubjectNameAssigned, []byte("{}"))
	testutil.AssertErrorContains(t, err, "not started")

	_, err = s.Subscribe(SubjectSpawn, func([]byte) {})
	testutil.AssertErrorContains(t, err, "not started")
}

func TestNatsServer_PublishSubscribe(t *testing.T) {
	s, err := NewNatsServer(
		WithPort(-1),
		WithStartTimeout(5*time.Second),
		WithConnectTimeout(time.Second),
		WithClientName("tollbooth-test"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server not ready")
	}

	got := make(chan string, 1)
	unsub, err := s.Subscribe(SubjectNameAssigned, func(data []byte) {
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := s.Publish(SubjectNameAssigned, []byte(`{"name":"Harbor Gate"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-got:
		testutil.AssertEqual(t, "message", msg, `{"name":"Harbor Gate"}`)
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestNatsServerOpts(t *testing.T) {
	s, err := NewNatsServer(
		WithHost("0.0.0.0"),
		WithPort(-1),
		WithStartTimeout(3*time.Second),
		WithConnectTimeout(500*time.Millisecond),
		WithClientName("booth-bus"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "host", s.host, "0.0.0.0")
	testutil.AssertEqual(t, "port", s.port, -1)
	testutil.AssertEqual(t, "start timeout", s.startupTimeout, 3*time.Second)
	testutil.AssertEqual(t, "connect timeout", s.connectTimeout, 500*time.Millisecond)
	testutil.AssertEqual(t, "client name", s.clientName, "booth-bus")
}
