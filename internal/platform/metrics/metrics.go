package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seo_writer_jobs_created_total",
		Help: "Total number of article generation jobs accepted",
	})

	JobsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seo_writer_jobs_finished_total",
		Help: "Total number of jobs that reached a terminal state",
	}, []string{"status"})

	JobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seo_writer_job_duration_seconds",
		Help:    "Wall clock duration of article generation pipelines",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	QualityScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seo_writer_quality_score",
		Help:    "Distribution of quality scores for completed articles",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seo_writer_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seo_writer_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
