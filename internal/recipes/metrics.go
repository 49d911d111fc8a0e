package recipes

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myrecipe_recipes_fetch_total",
		Help: "Recipe collection fetches by outcome",
	}, []string{"outcome"}) // success|canceled|timeout|status|bad_response|unavailable

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "myrecipe_recipes_fetch_duration_seconds",
		Help:    "Latency of recipe collection fetches",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"outcome"})

	fetchedRecipes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "myrecipe_recipes_last_fetch_count",
		Help: "Number of recipes returned by the last successful fetch",
	})
)

func recordFetch(err error, count int, d time.Duration) {
	o := outcome(err)
	fetchTotal.WithLabelValues(o).Inc()
	fetchDuration.WithLabelValues(o).Observe(d.Seconds())
	if err == nil {
		fetchedRecipes.Set(float64(count))
	}
}
