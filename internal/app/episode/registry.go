package episode

import (
	"sync"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/forest"
)

// Registry tracks live episodes by id. Each episode owns its own RNG and
// grid buffers, so they advance independently and concurrently.
type Registry struct {
	mu       sync.RWMutex
	episodes map[string]*Controller
}

func NewRegistry() *Registry {
	return &Registry{episodes: make(map[string]*Controller)}
}

func (r *Registry) Create(cfg forest.Config, policy ports.Policy, opts ...Option) (*Controller, error) {
	c, err := NewController(cfg, policy, opts...)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.episodes[c.ID] = c
	r.mu.Unlock()
	return c, nil
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.episodes[id]
	return c, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.episodes, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.episodes)
}
