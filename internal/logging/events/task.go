package events

import "github.com/atomicstack/tagmaster/internal/logging"

type AuthTracer struct{}

type PickerTracer struct{}

type TaskTracer struct{}

type TreeTracer struct{}

var (
	Auth   = AuthTracer{}
	Picker = PickerTracer{}
	Task   = TaskTracer{}
	Tree   = TreeTracer{}
)

func (AuthTracer) Submit(task uint64, key string) {
	logging.Trace("auth.submit", map[string]interface{}{"task": task, "key": key})
}

func (AuthTracer) Result(task uint64, err error) {
	payload := map[string]interface{}{"task": task, "ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("auth.result", payload)
}

func (AuthTracer) Logout() {
	logging.Trace("auth.logout", nil)
}

func (PickerTracer) Open(task uint64) {
	logging.Trace("picker.open", map[string]interface{}{"task": task})
}

func (PickerTracer) Result(task uint64, path string, ok bool, applied bool) {
	logging.Trace("picker.result", map[string]interface{}{"task": task, "path": path, "ok": ok, "applied": applied})
}

func (TaskTracer) Issue(id uint64, kind, label string) {
	logging.Trace("task.issue", map[string]interface{}{"id": id, "kind": kind, "label": label})
}

func (TaskTracer) Done(id uint64, kind, msgType string) {
	logging.Trace("task.done", map[string]interface{}{"id": id, "kind": kind, "msg": msgType})
}

func (TreeTracer) List(root, reason string, entries int, err error) {
	payload := map[string]interface{}{"root": root, "reason": reason, "entries": entries}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("tree.list", payload)
}

func (TreeTracer) Stale(root, current string) {
	logging.Trace("tree.stale", map[string]interface{}{"root": root, "current": current})
}

func (TreeTracer) Watch(root string) {
	logging.Trace("tree.watch", map[string]interface{}{"root": root})
}
