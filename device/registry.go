// SPDX-License-Identifier: Unlicense OR MIT

package device

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Backend describes a compiled-in backend.
type Backend struct {
	// New constructs an uninitialized device.
	New func(cfg Config) (Device, error)
	// Probe reports whether the backend's display hardware or server
	// looks present. A nil Probe always reports true.
	Probe func() bool
}

var (
	registryMu sync.RWMutex
	backends   = make(map[Type]Backend)
	// Selection order for SetDefault, first present wins.
	priority = []Type{EGL, RawFB, DirectFB, X11}
)

// Register makes a backend available under t. Backends call it from init
// functions in build-tagged files, so the set of registered types is the
// set compiled into the binary. Registering t again replaces it.
func Register(t Type, b Backend) {
	if b.New == nil {
		panic("device: Register with nil constructor")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[t] = b
}

// Unregister removes t. It exists for tests.
func Unregister(t Type) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, t)
}

// Available returns the compiled-in backend types in ascending order.
func Available() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := maps.Keys(backends)
	slices.Sort(types)
	return types
}

// IsCompiled reports whether t has a registered implementation.
func IsCompiled(t Type) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[t]
	return ok
}

// Probe returns the compiled-in backends whose hardware looks present,
// in selection priority order.
func Probe() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var found []Type
	for _, t := range priority {
		b, ok := backends[t]
		if !ok {
			continue
		}
		if b.Probe == nil || b.Probe() {
			Logger().Debug("probe found display device", "type", t)
			found = append(found, t)
		}
	}
	return found
}

func lookup(t Type) (Backend, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := backends[t]
	return b, ok
}
