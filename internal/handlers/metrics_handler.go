package handlers

import (
	"log"
	"mgMessenger/internal/realtime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/common/expfmt"
)

type MetricsHandler struct {
	hub *realtime.Hub
}

func NewMetricsHandler(hub *realtime.Hub) *MetricsHandler {
	return &MetricsHandler{
		hub: hub,
	}
}

// Metrics godoc
// @Summary      Hub metrics
// @Description  Connection and delivery counters in Prometheus text format
// @Tags         system
// @Produce      plain
// @Router       /metrics [get]
func (mh *MetricsHandler) Metrics(ctx *gin.Context) {
	ctx.Header("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	ctx.Status(http.StatusOK)
	if err := realtime.WriteMetrics(ctx.Writer, mh.hub.Stats()); err != nil {
		log.Printf("Error writing metrics: %v", err)
	}
}
