package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PersistenceFailures counts store writes that failed and were committed locally only.
	PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "persistence_failures_total",
		Help:      "Store writes that failed and fell back to a local-only commit.",
	}, []string{"op"})

	RequestTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "request_transitions_total",
		Help:      "Applied request status transitions.",
	}, []string{"from", "to"})

	RequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "requests_submitted_total",
		Help:      "Equipment requests created by submissions.",
	})

	FixtureFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "fixture_fallbacks_total",
		Help:      "Inventory loads that fell back to the built-in fixture.",
	})
)

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
