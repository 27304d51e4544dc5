package transport

import "sync"

// TrackProperties describes the track a processor sits on, as supplied by the
// host. Colour is 0xAARRGGBB; zero means the host reported none.
type TrackProperties struct {
	Name   string
	Colour uint32
}

// TrackInfo caches the most recent TrackProperties. Updates arrive on a
// non-realtime host callback, so an ordinary mutex is fine here.
type TrackInfo struct {
	mu       sync.Mutex
	props    TrackProperties
	onChange func(TrackProperties)
}

// OnChange registers a callback invoked asynchronously after each update.
func (t *TrackInfo) OnChange(fn func(TrackProperties)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Update replaces the cached properties and notifies the registered callback
// outside the lock.
func (t *TrackInfo) Update(props TrackProperties) {
	t.mu.Lock()
	t.props = props
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		go fn(props)
	}
}

// Get returns the cached properties.
func (t *TrackInfo) Get() TrackProperties {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.props
}
