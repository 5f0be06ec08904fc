package events

import "github.com/atomicstack/drilldown-menu/internal/logging"

type WatchTracer struct{}

var Watch = WatchTracer{}

func (WatchTracer) Change(path, op string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path, "op": op})
}

func (WatchTracer) Reload(path string, menus int) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path, "menus": menus})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}
