// Package host drives a processor the way a DAW drives a plugin: one
// ProcessBlock call per block interval, with a transport that advances in
// between. It is the stand-in host for running the bridge outside a DAW.
package host

import (
	"context"
	"sync"
	"time"

	"github.com/leozimmerman/dawInfoSender/transport"
)

// BlockProcessor is the lifecycle surface the clock drives.
type BlockProcessor interface {
	PrepareToPlay(sampleRate float64, blockSize int)
	ProcessBlock(buffer [][]float64, midi [][]byte)
	ReleaseResources()
}

// Clock owns a transport position and advances it one audio block at a time.
// It implements the processor's playhead interface, and all controls are safe
// to call while Run is looping.
type Clock struct {
	sampleRate float64
	blockSize  int

	mu          sync.Mutex
	tempo       float64
	numerator   int
	denominator int
	ppq         float64
	seconds     float64
	playing     bool
	recording   bool
}

// NewClock returns a stopped clock at 120 BPM in 4/4.
func NewClock(sampleRate float64, blockSize int) *Clock {
	return &Clock{
		sampleRate:  sampleRate,
		blockSize:   blockSize,
		tempo:       120,
		numerator:   4,
		denominator: 4,
	}
}

// Position implements the playhead query.
func (c *Clock) Position() (transport.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return transport.Position{
		TempoBPM:           c.tempo,
		TimeSigNumerator:   c.numerator,
		TimeSigDenominator: c.denominator,
		PPQPosition:        c.ppq,
		TimeInSeconds:      c.seconds,
		IsPlaying:          c.playing,
		IsRecording:        c.recording,
	}, true
}

// Advance moves the playhead forward by one block when playing.
func (c *Clock) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	dt := float64(c.blockSize) / c.sampleRate
	c.seconds += dt
	c.ppq += c.tempo * dt / 60.0
}

// Play starts the transport from the current position.
func (c *Clock) Play() {
	c.mu.Lock()
	c.playing = true
	c.mu.Unlock()
}

// Stop halts the transport, keeping the position.
func (c *Clock) Stop() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
}

// TogglePlay flips between playing and stopped and reports the new state.
func (c *Clock) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.playing
}

// Record arms or disarms recording.
func (c *Clock) Record(on bool) {
	c.mu.Lock()
	c.recording = on
	c.mu.Unlock()
}

// ToggleRecord flips the record state and reports the new one.
func (c *Clock) ToggleRecord() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recording = !c.recording
	return c.recording
}

// SetTempo changes the tempo for subsequent blocks. Non-positive tempos are
// ignored.
func (c *Clock) SetTempo(bpm float64) {
	if bpm <= 0 {
		return
	}
	c.mu.Lock()
	c.tempo = bpm
	c.mu.Unlock()
}

// Tempo returns the current tempo.
func (c *Clock) Tempo() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tempo
}

// SetTimeSignature changes the meter for subsequent blocks. Degenerate
// signatures are ignored.
func (c *Clock) SetTimeSignature(numerator, denominator int) {
	if numerator <= 0 || denominator <= 0 {
		return
	}
	c.mu.Lock()
	c.numerator = numerator
	c.denominator = denominator
	c.mu.Unlock()
}

// Locate moves the playhead to a quarter-note position.
func (c *Clock) Locate(ppq float64) {
	if ppq < 0 {
		ppq = 0
	}
	c.mu.Lock()
	c.ppq = ppq
	c.seconds = ppq * 60.0 / c.tempo
	c.mu.Unlock()
}

// Run prepares proc and calls it once per block interval until ctx is done.
// The audio buffers are silent pass-through stereo; the MIDI buffer stays
// empty.
func (c *Clock) Run(ctx context.Context, proc BlockProcessor) error {
	proc.PrepareToPlay(c.sampleRate, c.blockSize)
	defer proc.ReleaseResources()

	buffer := make([][]float64, 2)
	for ch := range buffer {
		buffer[ch] = make([]float64, c.blockSize)
	}

	interval := time.Duration(float64(c.blockSize) / c.sampleRate * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			proc.ProcessBlock(buffer, nil)
			c.Advance()
		}
	}
}
