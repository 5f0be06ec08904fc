package events

import "github.com/atomicstack/drilldown-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Select(id, href string) {
	logging.Trace("app.select", map[string]interface{}{"id": id, "href": href})
}

func (AppTracer) Exit(selected bool) {
	logging.Trace("app.exit", map[string]interface{}{"selected": selected})
}
