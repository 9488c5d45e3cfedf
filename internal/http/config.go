package http

import "net/http"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	UserBooks UserBooksManager
	Books     BookReader

	// Health reporting
	Storage     Pinger
	BackendName string
	Version     string

	// Prometheus exposition; nil disables /metrics
	MetricsHandler http.Handler
}
