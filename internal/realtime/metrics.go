package realtime

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const metricsNamespace = "mg_realtime_"

// WriteMetrics renders stats in the Prometheus text exposition format.
func WriteMetrics(w io.Writer, stats Stats) error {
	families := []*dto.MetricFamily{
		gauge("identities", "Identities with at least one events connection.", float64(stats.Identities)),
		gauge("event_connections", "Registered events connections.", float64(stats.EventConnections)),
		gauge("call_rooms", "Call rooms with at least one participant.", float64(stats.Rooms)),
		gauge("call_connections", "Registered call signaling connections.", float64(stats.CallConnections)),
		counter("events_delivered_total", "Event frames queued to connections.", float64(stats.Delivered)),
		counter("connections_pruned_total", "Connections unregistered after a failed send.", float64(stats.Pruned)),
		counter("call_messages_relayed_total", "Signaling frames queued to room peers.", float64(stats.Relayed)),
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricsNamespace + name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: proto.Float64(value)}},
		},
	}
}

func counter(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(metricsNamespace + name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{
			{Counter: &dto.Counter{Value: proto.Float64(value)}},
		},
	}
}
