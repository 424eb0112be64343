package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "elevator_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	appendTotal   *prometheus.CounterVec
	appendLatency *prometheus.HistogramVec

	datasetBuildTotal   *prometheus.CounterVec
	datasetBuildLatency *prometheus.HistogramVec

	unmatchedDemands prometheus.Counter
)

// Init registers service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		appendTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "append_total",
				Help: "Total append operations by record kind and result",
			},
			[]string{"kind", "result"},
		)
		appendLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "append_duration_seconds",
				Help:    "Append latency by record kind",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		)
		datasetBuildTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dataset_build_total",
				Help: "Total dataset builds by dataset shape and result",
			},
			[]string{"dataset", "result"},
		)
		datasetBuildLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dataset_build_duration_seconds",
				Help:    "Dataset build latency by dataset shape",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dataset"},
		)
		unmatchedDemands = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "dataset_unmatched_demands_total",
				Help: "Demands omitted from the paired dataset for lack of a prior resting state",
			},
		)

		prometheus.MustRegister(
			appendTotal,
			appendLatency,
			datasetBuildTotal,
			datasetBuildLatency,
			unmatchedDemands,
		)
	})
}

// ObserveAppend records an append outcome.
func ObserveAppend(kind string, err error, elapsed time.Duration) {
	if appendTotal == nil {
		return
	}
	appendTotal.WithLabelValues(kind, resultLabel(err)).Inc()
	appendLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveDatasetBuild records a dataset build outcome.
func ObserveDatasetBuild(dataset string, err error, elapsed time.Duration) {
	if datasetBuildTotal == nil {
		return
	}
	datasetBuildTotal.WithLabelValues(dataset, resultLabel(err)).Inc()
	datasetBuildLatency.WithLabelValues(dataset).Observe(elapsed.Seconds())
}

// AddUnmatchedDemands counts demands skipped by the resolver.
func AddUnmatchedDemands(n int) {
	if unmatchedDemands == nil || n <= 0 {
		return
	}
	unmatchedDemands.Add(float64(n))
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
