package dispatch

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	dispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dhthold",
			Subsystem: "dispatch",
			Name:      "dispatched_total",
			Help:      "Workflow invocations submitted to the task pool.",
		},
		[]string{"instance", "workflow"},
	)
	completedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dhthold",
			Subsystem: "dispatch",
			Name:      "completed_total",
			Help:      "Workflow invocations that returned without error.",
		},
		[]string{"instance", "workflow"},
	)
	failedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dhthold",
			Subsystem: "dispatch",
			Name:      "failed_total",
			Help:      "Workflow invocations that returned an error or panicked.",
		},
		[]string{"instance", "workflow"},
	)
	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dhthold",
			Subsystem: "dispatch",
			Name:      "rejected_total",
			Help:      "Workflow invocations the task pool refused.",
		},
		[]string{"instance", "workflow"},
	)
	malformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dhthold",
			Subsystem: "dispatch",
			Name:      "malformed_total",
			Help:      "Metadata requests with a malformed content_list.",
		},
		[]string{"instance", "attribute"},
	)
)

// RegisterMetrics 向默认 registry 注册分发器指标，可重复调用
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(dispatchedTotal, completedTotal, failedTotal, rejectedTotal, malformedTotal)
	})
}

func recordDispatched(instance, workflow string) {
	RegisterMetrics()
	dispatchedTotal.WithLabelValues(instance, workflow).Inc()
}

func recordCompleted(instance, workflow string) {
	RegisterMetrics()
	completedTotal.WithLabelValues(instance, workflow).Inc()
}

func recordFailed(instance, workflow string) {
	RegisterMetrics()
	failedTotal.WithLabelValues(instance, workflow).Inc()
}

func recordRejected(instance, workflow string) {
	RegisterMetrics()
	rejectedTotal.WithLabelValues(instance, workflow).Inc()
}

func recordMalformed(instance, attribute string) {
	RegisterMetrics()
	malformedTotal.WithLabelValues(instance, attribute).Inc()
}
