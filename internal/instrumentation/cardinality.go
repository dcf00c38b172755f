package instrumentation

import "strings"

// Cardinality management helpers for metrics.
//
// High cardinality in metrics causes increased memory usage in the metrics
// backend, slower queries, and higher storage costs. Request paths and tenant
// identifiers are the unbounded values in this service: paths go through
// NormalizeMetricPath before becoming labels, and tenant labels are gated
// behind the DetailedLabels configuration.

// NormalizeMetricPath reduces an HTTP request path to one of the server's
// known endpoints so the path label stays bounded. Unknown paths collapse
// into "other".
//
// Example:
//
//	NormalizeMetricPath("/healthz")          // "/healthz"
//	NormalizeMetricPath("/metrics?debug=1")  // "/metrics"
//	NormalizeMetricPath("/favicon.ico")      // "other"
func NormalizeMetricPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	switch path {
	case "/healthz", "/readyz", "/healthz/detailed", "/metrics":
		return path
	}

	return "other"
}

// Calendar provider operation types for metrics and spans.
const (
	OperationFreeBusy    = "free_busy"
	OperationInsertEvent = "insert_event"
)
