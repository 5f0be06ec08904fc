package events

import "github.com/atomicstack/drilldown-menu/internal/logging"

type MenuTracer struct{}

type NavTracer struct{}

type FocusTracer struct{}

type InputTracer struct{}

type TaskTracer struct{}

type CommandTracer struct{}

type SearchTracer struct{}

var (
	Menu    = MenuTracer{}
	Nav     = NavTracer{}
	Focus   = FocusTracer{}
	Input   = InputTracer{}
	Task    = TaskTracer{}
	Command = CommandTracer{}
	Search  = SearchTracer{}
)

func (MenuTracer) Init(instance, container, position string, active bool) {
	logging.Trace("menu.init", map[string]interface{}{
		"instance":  instance,
		"container": container,
		"position":  position,
		"active":    active,
	})
}

func (MenuTracer) Destroy(instance string, detached int) {
	logging.Trace("menu.destroy", map[string]interface{}{"instance": instance, "detached": detached})
}

func (MenuTracer) InitFailed(err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.init-failed", map[string]interface{}{"error": err.Error()})
}

func (NavTracer) Transition(instance, op, target, result string, path []string) {
	logging.Trace("nav.transition", map[string]interface{}{
		"instance": instance,
		"op":       op,
		"target":   target,
		"result":   result,
		"path":     path,
	})
}

func (FocusTracer) Move(instance, from, to string) {
	logging.Trace("focus.move", map[string]interface{}{"instance": instance, "from": from, "to": to})
}

func (FocusTracer) Sync(instance, level string, reachable int) {
	logging.Trace("focus.sync", map[string]interface{}{"instance": instance, "level": level, "reachable": reachable})
}

func (InputTracer) Route(instance, kind, input, op string) {
	logging.Trace("input.route", map[string]interface{}{
		"instance": instance,
		"kind":     kind,
		"input":    input,
		"op":       op,
	})
}

func (TaskTracer) Schedule(instance string, delayMS int64) {
	logging.Trace("task.schedule", map[string]interface{}{"instance": instance, "delay_ms": delayMS})
}

func (TaskTracer) Cancel(instance string) {
	logging.Trace("task.cancel", map[string]interface{}{"instance": instance})
}

func (TaskTracer) Fire(instance string) {
	logging.Trace("task.fire", map[string]interface{}{"instance": instance})
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

func (SearchTracer) Query(instance, query string, results int) {
	logging.Trace("search.query", map[string]interface{}{"instance": instance, "query": query, "results": results})
}

func (SearchTracer) Pick(instance, id string, revealed bool) {
	logging.Trace("search.pick", map[string]interface{}{"instance": instance, "id": id, "revealed": revealed})
}
