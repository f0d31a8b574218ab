package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logias_loads_total",
		Help: "Dataset loads by outcome (ok, failed)",
	}, []string{"outcome"})
	DatasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "logias_dataset_records",
		Help: "Number of lodge records in the loaded dataset",
	})
	LoadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "logias_load_duration_ms",
		Help:    "Dataset load duration in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})
	ViewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logias_views_total",
		Help: "Computed views by resulting state",
	}, []string{"state"})
	NavigationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logias_navigations_total",
		Help: "Map navigations issued",
	})
	NoticesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logias_notices_total",
		Help: "Notices emitted by kind",
	}, []string{"kind"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logias_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(
		LoadsTotal,
		DatasetRecords,
		LoadDurationMs,
		ViewsTotal,
		NavigationsTotal,
		NoticesTotal,
		HTTPRequestsTotal,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
