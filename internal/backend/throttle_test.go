package backend

import (
	"context"
	"testing"
	"time"
)

func TestSettleGateFirstPassDoesNotWait(t *testing.T) {
	gate := newSettleGate(time.Hour)
	done := make(chan bool, 1)
	go func() { done <- gate.wait(context.Background()) }()
	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("expected first pass to succeed")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected first pass to return immediately")
	}
}

func TestSettleGateCancelledWhileWaiting(t *testing.T) {
	gate := newSettleGate(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !gate.wait(ctx) {
		t.Fatalf("expected first pass to succeed")
	}
	done := make(chan bool, 1)
	go func() { done <- gate.wait(ctx) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected cancel to interrupt the wait")
	}
}

func TestSettleGateSkipsWaitOnceElapsed(t *testing.T) {
	clock := time.Unix(1000, 0)
	gate := newSettleGate(time.Minute)
	gate.now = func() time.Time { return clock }
	if !gate.wait(context.Background()) {
		t.Fatalf("expected first pass to succeed")
	}
	clock = clock.Add(2 * time.Minute)
	if !gate.wait(context.Background()) {
		t.Fatalf("expected elapsed period to pass without waiting")
	}
	if !gate.last.Equal(clock) {
		t.Fatalf("expected last pass %v, got %v", clock, gate.last)
	}
}

func TestSettleGateDisabled(t *testing.T) {
	var gate *settleGate
	if !gate.wait(context.Background()) {
		t.Fatalf("expected nil gate to pass")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if newSettleGate(0).wait(ctx) {
		t.Fatalf("expected cancelled context to report false")
	}
}
