package plugin

import "sync"

// IntParameter is a bounded integer parameter with change listeners, the one
// piece of the host automation surface this processor exposes.
type IntParameter struct {
	ID   string
	Name string
	Min  int
	Max  int

	mu        sync.Mutex
	value     int
	listeners []func(int)
}

// NewIntParameter returns a parameter clamped to [min, max] holding def.
func NewIntParameter(id, name string, min, max, def int) *IntParameter {
	p := &IntParameter{ID: id, Name: name, Min: min, Max: max}
	p.value = p.clamp(def)
	return p
}

// Value returns the current value.
func (p *IntParameter) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// SetValue clamps v into range and notifies listeners when the stored value
// changes. Notification happens outside the lock.
func (p *IntParameter) SetValue(v int) {
	v = p.clamp(v)

	p.mu.Lock()
	if v == p.value {
		p.mu.Unlock()
		return
	}
	p.value = v
	listeners := make([]func(int), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// AddListener registers fn to be called with each new value.
func (p *IntParameter) AddListener(fn func(int)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *IntParameter) clamp(v int) int {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}
