package metrics

import "github.com/prometheus/client_golang/prometheus"

// SearchRequestsTotal counts search requests by pipeline mode
// (recency vs similarity).
var SearchRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "relist",
		Name:      "search_requests_total",
		Help:      "Total number of search requests by mode",
	},
	[]string{"mode"},
)

// RegisterSearchMetrics registers search metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchRequestsTotal)
}
