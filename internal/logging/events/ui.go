package events

import "github.com/atomicstack/tagmaster/internal/logging"

type FilterTracer struct{}

type CommandTracer struct{}

var (
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (FilterTracer) Cleared(list string) {
	logging.Trace("filter.cleared", map[string]interface{}{"list": list})
}

func (FilterTracer) Append(list, filter string, matches int) {
	logging.Trace("filter.append", map[string]interface{}{"list": list, "filter": filter, "matches": matches})
}

func (FilterTracer) Backspace(list, filter string, matches int) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": list, "filter": filter, "matches": matches})
}

func (FilterTracer) Select(list, item string) {
	logging.Trace("filter.select", map[string]interface{}{"list": list, "item": item})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
