package realtime

import (
	"bytes"
	"testing"

	"github.com/prometheus/common/expfmt"
)

func TestWriteMetrics(t *testing.T) {
	hub := NewHub()
	a, b := newFakeConn("a"), newFakeConn("b")
	hub.ConnectEvents("alice", a)
	hub.ConnectEvents("bob", b)
	hub.ConnectCall("r", newFakeConn("x"))
	hub.ConnectCall("r", newFakeConn("y"))

	b.setFail(true)
	hub.NotifyUsers([]string{"alice", "bob"}, chatUpdate{Type: "chat:update"})

	var buf bytes.Buffer
	if err := WriteMetrics(&buf, hub.Stats()); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(&buf)
	if err != nil {
		t.Fatalf("parse exposition: %v", err)
	}

	gauges := map[string]float64{
		"mg_realtime_identities":        1,
		"mg_realtime_event_connections": 1,
		"mg_realtime_call_rooms":        1,
		"mg_realtime_call_connections":  2,
	}
	for name, want := range gauges {
		mf, ok := families[name]
		if !ok {
			t.Errorf("missing %v", name)
			continue
		}
		if got := mf.GetMetric()[0].GetGauge().GetValue(); got != want {
			t.Errorf("%v: got %v, want %v", name, got, want)
		}
	}

	counters := map[string]float64{
		"mg_realtime_events_delivered_total":      1,
		"mg_realtime_connections_pruned_total":    1,
		"mg_realtime_call_messages_relayed_total": 0,
	}
	for name, want := range counters {
		mf, ok := families[name]
		if !ok {
			t.Errorf("missing %v", name)
			continue
		}
		if got := mf.GetMetric()[0].GetCounter().GetValue(); got != want {
			t.Errorf("%v: got %v, want %v", name, got, want)
		}
	}
}
