package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leozimmerman/dawInfoSender/host"
	"github.com/leozimmerman/dawInfoSender/oscout"
	"github.com/leozimmerman/dawInfoSender/plugin"
	"github.com/leozimmerman/dawInfoSender/transport"
)

func newTestModel() (Model, *plugin.Processor, *host.Clock) {
	manager := oscout.NewManager()
	proc := plugin.NewProcessor(manager)
	clock := host.NewClock(48000, 512)
	proc.SetPlayhead(clock)
	return New(proc, clock, manager), proc, clock
}

func TestViewShowsTimecode(t *testing.T) {
	m, proc, _ := newTestModel()

	proc.Cell().Set(transport.Position{
		TempoBPM:           120.0,
		TimeSigNumerator:   4,
		TimeSigDenominator: 4,
		PPQPosition:        8.0,
		TimeInSeconds:      4.0,
		IsPlaying:          true,
	})

	view := m.View()
	for _, want := range []string{"120.00 bpm, 4/4", "00:00:04.000", "3|1|000", "(playing)", "9000"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestSpaceTogglesTransport(t *testing.T) {
	m, _, clock := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if pos, _ := clock.Position(); !pos.IsPlaying {
		t.Error("space did not start the transport")
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if pos, _ := clock.Position(); pos.IsPlaying {
		t.Error("space did not stop the transport")
	}
}

func TestTempoKeys(t *testing.T) {
	m, _, clock := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if got := clock.Tempo(); got != 121 {
		t.Errorf("tempo = %v, want 121", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if got := clock.Tempo(); got != 120 {
		t.Errorf("tempo = %v, want 120", got)
	}
}
