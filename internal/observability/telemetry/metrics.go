package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	PipelineRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenops_pipeline_runs_total",
		Help: "Completed full pipeline runs",
	})

	AnomaliesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenops_anomalies_detected_total",
		Help: "Anomalies detected by rule type",
	}, []string{"type"})

	DetectorLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "greenops_detector_latency_seconds",
		Help:    "Rule-based detector wall time",
		Buckets: prometheus.DefBuckets,
	})

	WorkOrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenops_work_orders_created_total",
		Help: "Remediation work orders created",
	})

	// External service metrics
	MLRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenops_ml_requests_total",
		Help: "Requests to the external scoring service",
	}, []string{"operation", "status"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "greenops_database_latency_seconds",
		Help:    "Record repository query latency",
		Buckets: prometheus.DefBuckets,
	})
)
