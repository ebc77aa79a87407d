package command

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type pingMsg struct{ n int }

func TestIssueYieldsSingleDone(t *testing.T) {
	bus := New(context.Background())
	id, cmd := bus.Issue(KindLogin, "login", func(context.Context) tea.Msg { return pingMsg{n: 1} })
	if bus.Pending(KindLogin) != 1 {
		t.Fatalf("expected one pending login")
	}
	done, ok := cmd().(Done)
	if !ok {
		t.Fatalf("expected Done message")
	}
	if done.ID != id || done.Kind != KindLogin {
		t.Fatalf("unexpected done %#v", done)
	}
	if msg, ok := done.Msg.(pingMsg); !ok || msg.n != 1 {
		t.Fatalf("expected wrapped ping, got %#v", done.Msg)
	}
	if _, ok := bus.Complete(done); !ok {
		t.Fatalf("expected first completion accepted")
	}
	if _, ok := bus.Complete(done); ok {
		t.Fatalf("expected duplicate completion rejected")
	}
	if len(bus.InFlight()) != 0 {
		t.Fatalf("expected no tasks in flight")
	}
}

func TestInFlightOrderAndNilTask(t *testing.T) {
	bus := New(context.TODO())
	first, _ := bus.Issue(KindPicker, "pick", nil)
	second, cmd := bus.Issue(KindLogin, "login", nil)
	tasks := bus.InFlight()
	if len(tasks) != 2 || tasks[0].ID != first || tasks[1].ID != second {
		t.Fatalf("unexpected in-flight order %#v", tasks)
	}
	done := cmd().(Done)
	if done.Msg != nil {
		t.Fatalf("expected nil payload for nil task, got %#v", done.Msg)
	}
}

func TestTasksReceiveBusContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus := New(ctx)
	_, cmd := bus.Issue(KindWindow, "open", func(ctx context.Context) tea.Msg { return ctx.Err() })
	if done := cmd().(Done); done.Msg != context.Canceled {
		t.Fatalf("expected cancelled context, got %#v", done.Msg)
	}
}
