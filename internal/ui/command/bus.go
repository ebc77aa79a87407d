package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/atomicstack/tagmaster/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind groups tasks by the collaborator they call.
type Kind string

const (
	KindLogin  Kind = "login"
	KindPicker Kind = "picker"
	KindWindow Kind = "window"
)

// Task is an issued operation that has not completed yet.
type Task struct {
	ID     uint64
	Kind   Kind
	Label  string
	Issued time.Time
}

// Done is the completion message of a task. Msg is whatever the task
// function returned.
type Done struct {
	ID    uint64
	Kind  Kind
	Label string
	Msg   tea.Msg
}

// Bus issues tasks off the update loop and tracks which are in flight.
// Issue and Complete must only be called from the update loop.
type Bus struct {
	ctx      context.Context
	next     uint64
	inflight map[uint64]Task
}

// New initialises a command bus. Tasks receive ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, inflight: make(map[uint64]Task)}
}

// Issue registers a task and returns the command that runs it. The command
// yields exactly one Done message.
func (b *Bus) Issue(kind Kind, label string, fn func(context.Context) tea.Msg) (uint64, tea.Cmd) {
	b.next++
	id := b.next
	b.inflight[id] = Task{ID: id, Kind: kind, Label: label, Issued: time.Now()}
	ref := fmt.Sprintf("%s-%d", kind, id)
	events.Command.Queue(ref, label)
	events.Task.Issue(id, string(kind), label)
	ctx := b.ctx
	return id, func() tea.Msg {
		var msg tea.Msg
		if fn == nil {
			events.Command.Skip(ref, label)
		} else {
			msg = fn(ctx)
		}
		if msg == nil {
			events.Command.NoOp(ref, label)
		} else {
			events.Command.Result(ref, label, fmt.Sprintf("%T", msg))
		}
		return Done{ID: id, Kind: kind, Label: label, Msg: msg}
	}
}

// Complete retires the task behind d. It reports false for tasks that were
// never issued or have already completed.
func (b *Bus) Complete(d Done) (Task, bool) {
	task, ok := b.inflight[d.ID]
	if !ok {
		return Task{}, false
	}
	delete(b.inflight, d.ID)
	events.Task.Done(d.ID, string(d.Kind), fmt.Sprintf("%T", d.Msg))
	return task, true
}

// InFlight lists outstanding tasks in issue order.
func (b *Bus) InFlight() []Task {
	out := make([]Task, 0, len(b.inflight))
	for _, task := range b.inflight {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Pending counts outstanding tasks of kind.
func (b *Bus) Pending(kind Kind) int {
	n := 0
	for _, task := range b.inflight {
		if task.Kind == kind {
			n++
		}
	}
	return n
}
