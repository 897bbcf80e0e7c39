package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var generationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "talentd",
		Subsystem: "ai",
		Name:      "generations_total",
		Help:      "Total AI content generation calls by content type and outcome.",
	},
	[]string{"content_type", "outcome"},
)

// ObserveGeneration records one generation call.
func ObserveGeneration(contentType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	generationTotal.WithLabelValues(contentType, outcome).Inc()
}
