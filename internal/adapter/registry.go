// internal/adapter/registry.go
package adapter

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// ========== global factory registry, filled by backend init functions ==========
var factoryRegistry = make(map[string]Factory)

// Register called from a backend's init function
func Register(backend string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("graph backend %s registered a nil factory", backend))
	}
	if _, exists := factoryRegistry[backend]; exists {
		logrus.Warnf("graph backend %s already registered, overriding", backend)
	}
	factoryRegistry[backend] = factory
	logrus.Debugf("graph backend %s registered", backend)
}

// GetFactory factory registered for backend
func GetFactory(backend string) (Factory, bool) {
	factory, ok := factoryRegistry[backend]
	return factory, ok
}

// ListFactories registered backend names, sorted
func ListFactories() []string {
	backends := make([]string, 0, len(factoryRegistry))
	for b := range factoryRegistry {
		backends = append(backends, b)
	}
	sort.Strings(backends)
	return backends
}
