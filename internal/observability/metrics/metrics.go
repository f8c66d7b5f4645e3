package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "advisor_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

var (
	registerOnce sync.Once

	insightsGenerated  *prometheus.CounterVec
	upstreamRequests   *prometheus.CounterVec
	deliveryAttempts   *prometheus.CounterVec
	deliveries         *prometheus.CounterVec
	schedulerRuns      *prometheus.CounterVec
	schedulerDurations prometheus.Histogram
)

// Init registra as métricas no registry informado (nil usa o registry padrão).
// Chamadas subsequentes são ignoradas.
func Init(registerer prometheus.Registerer) {
	registerOnce.Do(func() {
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}

		insightsGenerated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "insights_generated_total",
				Help: "Total insights generated by path and classification",
			},
			[]string{"path", "classification"},
		)
		upstreamRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_requests_total",
				Help: "Total transaction provider requests by window and result",
			},
			[]string{"window", "result"},
		)
		deliveryAttempts = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "delivery_attempts_total",
				Help: "Total webhook delivery attempts by destination and result",
			},
			[]string{"destination", "result"},
		)
		deliveries = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "deliveries_total",
				Help: "Total webhook deliveries after retries by destination and result",
			},
			[]string{"destination", "result"},
		)
		schedulerRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "scheduler_runs_total",
				Help: "Total weekly insight job runs by trigger and result",
			},
			[]string{"trigger", "result"},
		)
		schedulerDurations = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "scheduler_run_duration_seconds",
				Help:    "Weekly insight job run duration in seconds",
				Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 180, 300},
			},
		)

		registerer.MustRegister(
			insightsGenerated,
			upstreamRequests,
			deliveryAttempts,
			deliveries,
			schedulerRuns,
			schedulerDurations,
		)
	})
}

// IncInsightGenerated incrementa o contador de insights gerados.
func IncInsightGenerated(path, classification string) {
	if insightsGenerated != nil {
		insightsGenerated.WithLabelValues(path, classification).Inc()
	}
}

// IncUpstreamRequest conta chamadas ao provedor de transações.
func IncUpstreamRequest(window string, err error) {
	if upstreamRequests != nil {
		upstreamRequests.WithLabelValues(window, resultOf(err)).Inc()
	}
}

func IncDeliveryAttempt(destination string, err error) {
	if deliveryAttempts != nil {
		deliveryAttempts.WithLabelValues(destination, resultOf(err)).Inc()
	}
}

func IncDelivery(destination string, err error) {
	if deliveries != nil {
		deliveries.WithLabelValues(destination, resultOf(err)).Inc()
	}
}

// ObserveSchedulerRun registra resultado e duração de uma execução do job.
func ObserveSchedulerRun(trigger, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if schedulerRuns != nil {
		schedulerRuns.WithLabelValues(trigger, result).Inc()
	}
	if schedulerDurations != nil && result != ResultSkipped {
		schedulerDurations.Observe(duration.Seconds())
	}
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
