package events

import "github.com/atomicstack/tagmaster/internal/logging"

type ScreenTracer struct{}

type WindowTracer struct{}

type PaneTracer struct{}

type ProjectTracer struct{}

var (
	Screen  = ScreenTracer{}
	Window  = WindowTracer{}
	Pane    = PaneTracer{}
	Project = ProjectTracer{}
)

func (ScreenTracer) Request(target, effective string) {
	logging.Trace("screen.request", map[string]interface{}{"target": target, "effective": effective})
}

func (WindowTracer) Open(kind, action, handle string) {
	logging.Trace("window.open", map[string]interface{}{"kind": kind, "action": action, "handle": handle})
}

func (WindowTracer) Opened(kind, handle string, registered bool) {
	logging.Trace("window.opened", map[string]interface{}{"kind": kind, "handle": handle, "registered": registered})
}

func (WindowTracer) Close(kind, handle string, exit bool) {
	logging.Trace("window.close", map[string]interface{}{"kind": kind, "handle": handle, "exit": exit})
}

func (WindowTracer) Unknown(handle, event string) {
	logging.Trace("window.unknown", map[string]interface{}{"handle": handle, "event": event})
}

func (WindowTracer) Focus(handle string) {
	logging.Trace("window.focus", map[string]interface{}{"handle": handle})
}

func (PaneTracer) Resize(split string, ratio float64, applied bool) {
	logging.Trace("pane.resize", map[string]interface{}{"split": split, "ratio": ratio, "applied": applied})
}

func (PaneTracer) Drag(source, target, edge string, applied bool) {
	logging.Trace("pane.drag", map[string]interface{}{"source": source, "target": target, "edge": edge, "applied": applied})
}

func (PaneTracer) Focus(pane string) {
	logging.Trace("pane.focus", map[string]interface{}{"pane": pane})
}

func (PaneTracer) Remove(pane string, applied bool) {
	logging.Trace("pane.remove", map[string]interface{}{"pane": pane, "applied": applied})
}

func (PaneTracer) Reset(leaves int) {
	logging.Trace("pane.reset", map[string]interface{}{"leaves": leaves})
}

func (ProjectTracer) Create(name, kind, location string) {
	logging.Trace("project.create", map[string]interface{}{"name": name, "kind": kind, "location": location})
}

func (ProjectTracer) Reject(name string, err error) {
	logging.Trace("project.create.reject", map[string]interface{}{"name": name, "error": err.Error()})
}

func (ProjectTracer) Close(name string) {
	logging.Trace("project.close", map[string]interface{}{"name": name})
}

func (ProjectTracer) FormOpen() {
	logging.Trace("project.form.open", nil)
}

func (ProjectTracer) FormDiscard() {
	logging.Trace("project.form.discard", nil)
}
