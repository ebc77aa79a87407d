package ui

import tea "github.com/charmbracelet/bubbletea"

// maxHarnessSteps bounds the messages processed for one Send.
const maxHarnessSteps = 256

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously; batches are flattened and run in order.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Start runs the model's Init command.
func (h *Harness) Start() {
	if h.model == nil {
		return
	}
	h.Run(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	h.Run(h.Dispatch(msg))
}

// Dispatch routes msg through the model and returns its command unexecuted.
func (h *Harness) Dispatch(msg tea.Msg) tea.Cmd {
	if h.model == nil || msg == nil {
		return nil
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

// Run executes cmd and feeds every resulting message back into the model.
func (h *Harness) Run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxHarnessSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		default:
			queue = append(queue, h.Dispatch(msg))
		}
	}
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
