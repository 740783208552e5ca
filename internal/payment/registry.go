package payment

import (
	"sync"
	"time"
)

type registryEntry struct {
	flow    *Flow
	touched time.Time
}

// Registry keeps in-flight flows by booking reference.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*registryEntry
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		flows: make(map[string]*registryEntry),
		now:   time.Now,
	}
}

// GetOrCreate returns the flow for reference, calling create only if there is none.
func (r *Registry) GetOrCreate(reference string, create func() *Flow) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.flows[reference]; ok {
		e.touched = r.now()
		return e.flow
	}

	f := create()
	r.flows[reference] = &registryEntry{flow: f, touched: r.now()}

	return f
}

func (r *Registry) Get(reference string) (*Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.flows[reference]
	if !ok {
		return nil, false
	}
	e.touched = r.now()

	return e.flow, true
}

func (r *Registry) Remove(reference string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.flows, reference)
}

// Prune drops flows that are not running and have not been touched for ttl,
// and returns how many it dropped.
func (r *Registry) Prune(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	pruned := 0

	for ref, e := range r.flows {
		if e.touched.Before(cutoff) && !e.flow.Running() {
			delete(r.flows, ref)
			pruned++
		}
	}

	return pruned
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.flows)
}
