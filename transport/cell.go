package transport

import (
	"runtime"
	"sync/atomic"
)

// Cell keeps a copy of the last position that was acquired during an audio
// callback, for the display and the sender to read.
//
// Set is wait-free: storing new info is skipped if a reader currently holds
// the cell. This is unlikely to matter in practice because Set is called much
// more frequently than Get.
type Cell struct {
	lock int32
	pos  Position
}

// NewCell returns a cell holding the default position.
func NewCell() *Cell {
	return &Cell{pos: DefaultPosition()}
}

// Set stores p unless a reader holds the cell. It never blocks and never
// allocates, so it is safe to call from the audio callback.
func (c *Cell) Set(p Position) {
	if atomic.CompareAndSwapInt32(&c.lock, 0, 1) {
		c.pos = p
		atomic.StoreInt32(&c.lock, 0)
	}
}

// Get returns the most recently completed Set. The spin here only ever waits
// for a single struct copy on the other side.
func (c *Cell) Get() Position {
	for !atomic.CompareAndSwapInt32(&c.lock, 0, 1) {
		runtime.Gosched()
	}
	p := c.pos
	atomic.StoreInt32(&c.lock, 0)
	return p
}
