// Package transport holds the playhead position reported by a host for each
// audio block, and a realtime-safe cell for sharing it between the audio
// thread and everything else.
package transport

import "fmt"

// Position is the transport state a host reports for one audio block.
type Position struct {
	TempoBPM           float64
	TimeSigNumerator   int
	TimeSigDenominator int
	PPQPosition        float64
	TimeInSeconds      float64
	IsPlaying          bool
	IsRecording        bool
}

// DefaultPosition returns the position substituted when the host cannot
// report one: 120 BPM in 4/4, stopped at the start of the timeline.
func DefaultPosition() Position {
	return Position{
		TempoBPM:           120,
		TimeSigNumerator:   4,
		TimeSigDenominator: 4,
	}
}

// String renders the one-line summary shown by the timecode display.
func (p Position) String() string {
	s := fmt.Sprintf("%.2f bpm, %d/%d  -  %s  -  %s",
		p.TempoBPM,
		p.TimeSigNumerator, p.TimeSigDenominator,
		Timecode(p.TimeInSeconds),
		BarsBeats(p.PPQPosition, p.TimeSigNumerator, p.TimeSigDenominator))
	if p.IsRecording {
		return s + "  (recording)"
	}
	if p.IsPlaying {
		return s + "  (playing)"
	}
	return s
}
