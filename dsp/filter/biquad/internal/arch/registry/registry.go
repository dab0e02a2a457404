// Package registry selects the block kernel a resonator section runs on,
// keyed by the SIMD capabilities of the host CPU. Architecture packages
// register their kernels from init; the section picks one on first use.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are the normalized transfer coefficients a kernel applies
// (a0 folded out).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn filters buf in-place through one direct-form-II-transposed
// section, threading the delay line through d0 and d1.
type BlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Kernel is one registered block implementation.
type Kernel struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Block     BlockFn
}

// Registry holds the kernels compiled into this build.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
	sorted  bool
}

// Global is the registry the architecture packages register into.
var Global = &Registry{}

// Register adds a kernel. Safe to call from init of multiple packages.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	r.sorted = false
}

// Lookup returns the highest-priority kernel the given CPU features support,
// or nil when nothing matches. Ties keep registration order.
func (r *Registry) Lookup(features cpu.Features) *Kernel {
	r.mu.Lock()
	if !r.sorted {
		sort.SliceStable(r.kernels, func(i, j int) bool {
			return r.kernels[i].Priority > r.kernels[j].Priority
		})
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		k := &r.kernels[i]
		if cpu.Supports(features, k.SIMDLevel) {
			return k
		}
	}

	return nil
}

// Kernels returns a copy of the registered kernels.
func (r *Registry) Kernels() []Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kernels := make([]Kernel, len(r.kernels))
	copy(kernels, r.kernels)

	return kernels
}

// Reset clears the registry. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = nil
	r.sorted = false
}
