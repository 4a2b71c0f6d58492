package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// registry is the process-wide Prometheus registry metrics collectors
// register against once enabled. Collection is off until InitRegistry is
// called (typically once, from main), so running the library embedded in
// a test or a one-shot CLI never pays for metric allocation or
// registration.
var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry enables metrics collection against reg. Passing nil
// disables collection again, which IsEnabled/GetRegistry both reflect
// immediately.
func InitRegistry(reg *prometheus.Registry) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = reg
}

// IsEnabled reports whether InitRegistry has been called with a non-nil
// registry.
func IsEnabled() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry != nil
}

// GetRegistry returns the registry passed to InitRegistry, or nil if
// collection is disabled.
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}
