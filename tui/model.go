// Package tui renders the transport timecode in the terminal, refreshing
// from the snapshot cell the way the plugin editor ran its display timer.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leozimmerman/dawInfoSender/host"
	"github.com/leozimmerman/dawInfoSender/plugin"
)

// refresh rate of the timecode display
const refreshHz = 30

// Destination reports the OSC target shown in the footer.
type Destination interface {
	Destination() (host string, port int, namespaceID string)
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/refreshHz, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the bridge display.
type Model struct {
	proc     *plugin.Processor
	clock    *host.Clock
	dest     Destination
	quitting bool
}

// New returns a display for proc driven by clock, showing dest in the footer.
func New(proc *plugin.Processor, clock *host.Clock, dest Destination) Model {
	return Model{proc: proc, clock: clock, dest: dest}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.clock.TogglePlay()

		case "r":
			m.clock.ToggleRecord()

		case "+", "=":
			m.clock.SetTempo(m.clock.Tempo() + 1)

		case "-", "_":
			m.clock.SetTempo(m.clock.Tempo() - 1)

		case "0":
			m.clock.Locate(0)
		}

	case tickMsg:
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	if track := m.proc.TrackProperties(); track.Colour != 0 {
		headerStyle = headerStyle.Foreground(lipgloss.Color(fmt.Sprintf("#%06x", track.Colour&0xffffff)))
	}
	dimStyle := lipgloss.NewStyle().Faint(true)

	pos := m.proc.LastPosition()
	destHost, destPort, namespaceID := m.dest.Destination()

	title := "dawosc"
	if track := m.proc.TrackProperties(); track.Name != "" {
		title += "  [" + track.Name + "]"
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(title))
	out.WriteString("\n\n")
	out.WriteString(pos.String())
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(fmt.Sprintf("sending to %s:%d as /%s/*", destHost, destPort, namespaceID)))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("space:play/stop  r:record  +/-:tempo  0:rewind  q:quit"))
	out.WriteString("\n")

	return out.String()
}
