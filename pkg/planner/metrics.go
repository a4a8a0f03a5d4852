package planner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess     = "success"
	statusFailure     = "failure"
	statusUnsupported = "unsupported"
)

type metrics struct {
	translationsTotal *prometheus.CounterVec
	convertSeconds    prometheus.Histogram
	implementSeconds  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		translationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "solrplan_translations_total",
			Help: "Total number of plan translations, partitioned by status.",
		}, []string{"status"}),
		convertSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:                            "solrplan_convert_seconds",
			Help:                            "Time spent converting logical plans.",
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}),
		implementSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:                            "solrplan_implement_seconds",
			Help:                            "Time spent implementing converted plans.",
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}),
	}
}
