// Package oscout sends transport values to an OSC listener over UDP.
// Sends are fire-and-forget datagrams: there is no acknowledgement and a
// misconfigured destination is an error for the caller to drop, never a
// reason to interrupt audio processing.
package oscout

import (
	"strings"
	"sync"

	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"

	"github.com/leozimmerman/dawInfoSender/transport"
)

// Destination bounds and defaults.
const (
	MinPort     = 1024
	MaxPort     = 65535
	DefaultPort = 9000

	DefaultHost        = "127.0.0.1"
	DefaultNamespaceID = "daw"
)

// Labels for the per-field transport messages. Each block emits one message
// per label at /<namespace>/<label>.
const (
	LabelBPM                = "BPM"
	LabelTimeSigNumerator   = "TIME-SIGN-NUMERATOR"
	LabelTimeSigDenominator = "TIME-SIGN-DENOMINATOR"
	LabelPPQPosition        = "PPQ-POSITION"
	LabelTimeInSeconds      = "TIME-IN-SECONDS"
	LabelIsPlaying          = "IS-PLAYING"
	LabelIsRecording        = "IS-RECORDING"
)

// Manager owns the outbound OSC destination. The audio thread sends through
// it while the UI reconfigures it, so the destination is guarded by a mutex
// that is only ever held for a datagram write.
type Manager struct {
	mu          sync.Mutex
	client      *osc.Client
	namespaceID string
}

// NewManager returns a manager targeting the default destination.
func NewManager() *Manager {
	return &Manager{
		client:      osc.NewClient(DefaultHost, DefaultPort),
		namespaceID: DefaultNamespaceID,
	}
}

// SetHost retargets subsequent sends to a new host address.
func (m *Manager) SetHost(host string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if host == "" {
		host = DefaultHost
	}
	m.client.SetIP(host)
}

// SetPort retargets subsequent sends to a new port, clamped to
// [MinPort, MaxPort].
func (m *Manager) SetPort(port int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client.SetPort(clampPort(port))
}

// SetNamespaceID changes the first component of subsequent message addresses.
// Surrounding slashes are stripped; an empty id falls back to the default.
func (m *Manager) SetNamespaceID(id string) {
	id = strings.Trim(id, "/")
	if id == "" {
		id = DefaultNamespaceID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namespaceID = id
}

// Destination reports the current target, for display and persistence.
func (m *Manager) Destination() (host string, port int, namespaceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client.IP(), m.client.Port(), m.namespaceID
}

// SendValue sends one message addressed /<namespace>/<label> carrying value
// as its single argument. Integers go out as int32, floats keep their width
// and bools use the OSC true/false tags.
func (m *Manager) SendValue(label string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := osc.NewMessage("/" + m.namespaceID + "/" + label)
	switch v := value.(type) {
	case int:
		msg.Append(int32(v))
	default:
		msg.Append(value)
	}
	if err := m.client.Send(msg); err != nil {
		return errors.Wrapf(err, "sending %s", label)
	}
	return nil
}

// SendPosition emits one message per labeled transport field. All fields are
// attempted even when one send fails; the first error is returned.
func (m *Manager) SendPosition(pos transport.Position) error {
	var firstErr error
	send := func(label string, value interface{}) {
		if err := m.SendValue(label, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	send(LabelBPM, pos.TempoBPM)
	send(LabelTimeSigNumerator, pos.TimeSigNumerator)
	send(LabelTimeSigDenominator, pos.TimeSigDenominator)
	send(LabelPPQPosition, pos.PPQPosition)
	send(LabelTimeInSeconds, pos.TimeInSeconds)
	send(LabelIsPlaying, pos.IsPlaying)
	send(LabelIsRecording, pos.IsRecording)
	return firstErr
}

func clampPort(port int) int {
	if port < MinPort {
		return MinPort
	}
	if port > MaxPort {
		return MaxPort
	}
	return port
}
