package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type fakeListener struct {
	listenErr error
	closed    chan struct{}
	closes    atomic.Int32
}

func newFakeListener(listenErr error) *fakeListener {
	return &fakeListener{listenErr: listenErr, closed: make(chan struct{})}
}

func (f *fakeListener) Listen(string) error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.closed
	return nil
}

func (f *fakeListener) Close() error {
	if f.closes.Add(1) == 1 {
		close(f.closed)
	}
	return nil
}

func TestServeUntilDoneReturnsListenError(t *testing.T) {
	server := newFakeListener(errors.New("address already in use"))
	result := make(chan error, 1)
	go func() {
		result <- serveUntilDone(context.Background(), server, ":0")
	}()

	select {
	case err := <-result:
		if err == nil || !strings.Contains(err.Error(), "address already in use") {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serveUntilDone did not return after Listen failed")
	}
	if server.closes.Load() != 0 {
		t.Fatalf("server should not be closed when Listen fails")
	}
}

func TestServeUntilDoneClosesOnCancel(t *testing.T) {
	server := newFakeListener(nil)
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- serveUntilDone(ctx, server, ":0")
	}()
	cancel()

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serveUntilDone did not return after cancel")
	}
	if server.closes.Load() != 1 {
		t.Fatalf("expected one Close, got %d", server.closes.Load())
	}
}
