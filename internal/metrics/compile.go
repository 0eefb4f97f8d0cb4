package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	searchesCompiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "querydex",
			Name:      "searches_compiled_total",
			Help:      "Total number of boolean search queries compiled, by variant",
		},
		[]string{"variant"},
	)

	titleMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "querydex",
			Name:      "title_matches_total",
			Help:      "Total number of title match attempts, by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterCompileMetrics registers compiler metrics with the default
// registry. Called once from the composition root (no init).
func RegisterCompileMetrics() {
	prometheus.MustRegister(searchesCompiled)
	prometheus.MustRegister(titleMatches)
}

// SearchCompiled counts one compiled query for a variant.
func SearchCompiled(variant string) {
	searchesCompiled.WithLabelValues(variant).Inc()
}

// TitleMatched counts the outcome of one title match attempt.
func TitleMatched(matched bool) {
	outcome := "matched"
	if !matched {
		outcome = "no_match"
	}
	titleMatches.WithLabelValues(outcome).Inc()
}
