// Package plugin wires host lifecycle callbacks to the transport snapshot
// cell and the OSC sender. The embedding program plays the host: it calls
// PrepareToPlay once, ProcessBlock once per audio block, and hands state
// blobs back and forth on session save/restore.
package plugin

import (
	"sync"
	"sync/atomic"

	"github.com/leozimmerman/dawInfoSender/oscout"
	"github.com/leozimmerman/dawInfoSender/state"
	"github.com/leozimmerman/dawInfoSender/transport"
)

// PortParameterID identifies the OSC port parameter to the host.
const PortParameterID = "oscPort"

// Playhead reports the host transport position for the current block.
// Position returns false when the host cannot provide one.
type Playhead interface {
	Position() (transport.Position, bool)
}

// Sender is the outbound side the processor drives. *oscout.Manager
// satisfies it.
type Sender interface {
	SendPosition(transport.Position) error
	SetHost(string)
	SetPort(int)
	SetNamespaceID(string)
	Destination() (host string, port int, namespaceID string)
}

// Processor forwards the host transport to OSC listeners while passing audio
// through unmodified.
type Processor struct {
	sender Sender
	cell   *transport.Cell
	track  transport.TrackInfo
	port   *IntParameter

	playhead atomic.Value // Playhead

	mu         sync.Mutex
	numInputs  int
	sampleRate float64
	blockSize  int
}

// NewProcessor returns a processor sending through sender, laid out for
// stereo in/out.
func NewProcessor(sender Sender) *Processor {
	p := &Processor{
		sender:    sender,
		cell:      transport.NewCell(),
		port:      NewIntParameter(PortParameterID, "Osc Port", oscout.MinPort, oscout.MaxPort, oscout.DefaultPort),
		numInputs: 2,
	}
	p.port.AddListener(sender.SetPort)
	return p
}

// SupportedLayout reports whether a channel layout is acceptable: mono or
// stereo output, with the input either disabled or matching the output.
func SupportedLayout(inputs, outputs int) bool {
	if outputs == 0 || outputs > 2 {
		return false
	}
	return inputs == 0 || inputs == outputs
}

// SetLayout configures the number of input channels present in the buffers
// handed to ProcessBlock. Channels beyond this count are treated as outputs
// to clear.
func (p *Processor) SetLayout(inputs int) {
	p.mu.Lock()
	p.numInputs = inputs
	p.mu.Unlock()
}

// SetPlayhead installs the transport source. Call before processing starts;
// a nil or absent playhead makes every block report the default position.
func (p *Processor) SetPlayhead(ph Playhead) {
	p.playhead.Store(&ph)
}

// PrepareToPlay is called by the host before the first block.
func (p *Processor) PrepareToPlay(sampleRate float64, blockSize int) {
	p.mu.Lock()
	p.sampleRate = sampleRate
	p.blockSize = blockSize
	p.mu.Unlock()
}

// ReleaseResources is called by the host when playback stops for good.
func (p *Processor) ReleaseResources() {}

// Reset is called by the host to clear any playback state.
func (p *Processor) Reset() {}

// ProcessBlock handles one audio block: audio passes through with output
// channels beyond the input count cleared, the MIDI buffer is carried
// untouched, and the current transport position is snapshotted and emitted
// as one OSC message per field. Send failures are dropped; nothing here may
// interrupt the audio path.
func (p *Processor) ProcessBlock(buffer [][]float64, midi [][]byte) {
	p.mu.Lock()
	numInputs := p.numInputs
	p.mu.Unlock()

	for ch := numInputs; ch < len(buffer); ch++ {
		for i := range buffer[ch] {
			buffer[ch][i] = 0
		}
	}
	_ = midi

	pos := p.currentPosition()
	p.cell.Set(pos)
	_ = p.sender.SendPosition(pos)
}

func (p *Processor) currentPosition() transport.Position {
	if v := p.playhead.Load(); v != nil {
		if ph := *v.(*Playhead); ph != nil {
			if pos, ok := ph.Position(); ok {
				return pos
			}
		}
	}
	return transport.DefaultPosition()
}

// LastPosition returns the snapshot taken by the most recent block.
func (p *Processor) LastPosition() transport.Position {
	return p.cell.Get()
}

// Cell exposes the snapshot cell for display timers.
func (p *Processor) Cell() *transport.Cell {
	return p.cell
}

// PortParameter returns the OSC port parameter. Changes are forwarded to the
// sender.
func (p *Processor) PortParameter() *IntParameter {
	return p.port
}

// HostChanged forwards a new destination host from the configuration surface.
func (p *Processor) HostChanged(host string) {
	p.sender.SetHost(host)
}

// NamespaceIDChanged forwards a new message namespace.
func (p *Processor) NamespaceIDChanged(id string) {
	p.sender.SetNamespaceID(id)
}

// UpdateTrackProperties caches the track name and colour supplied by the
// host and notifies the display.
func (p *Processor) UpdateTrackProperties(props transport.TrackProperties) {
	p.track.Update(props)
}

// TrackProperties returns the cached track properties.
func (p *Processor) TrackProperties() transport.TrackProperties {
	return p.track.Get()
}

// OnTrackChange registers a callback for track property updates.
func (p *Processor) OnTrackChange(fn func(transport.TrackProperties)) {
	p.track.OnChange(fn)
}

// StateInformation serializes the OSC destination for host persistence.
func (p *Processor) StateInformation() ([]byte, error) {
	host, port, id := p.sender.Destination()
	return state.Encode(state.Settings{Host: host, Port: port, NamespaceID: id})
}

// SetStateInformation restores the destination from a persisted blob.
// Malformed blobs restore the default configuration; the host never sees an
// error from a bad session file.
func (p *Processor) SetStateInformation(data []byte) {
	s := state.Decode(data)
	p.sender.SetHost(s.Host)
	p.sender.SetNamespaceID(s.NamespaceID)
	p.port.SetValue(s.Port)
}
