package transport

import (
	"fmt"
	"math"
)

// Timecode formats seconds as HH:MM:SS.mmm.
func Timecode(seconds float64) string {
	millis := int(math.Round(seconds * 1000.0))
	abs := millis
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		millis/3600000,
		(abs/60000)%60,
		(abs/1000)%60,
		abs%1000)
}

// BarsBeats formats a quarter-note position as bar|beat|ticks with 960 ticks
// per beat. A degenerate time signature renders as the timeline origin.
func BarsBeats(quarterNotes float64, numerator, denominator int) string {
	if numerator == 0 || denominator == 0 {
		return "1|1|000"
	}
	quarterNotesPerBar := numerator * 4 / denominator
	if quarterNotesPerBar == 0 {
		return "1|1|000"
	}
	beats := math.Mod(quarterNotes, float64(quarterNotesPerBar)) / float64(quarterNotesPerBar) * float64(numerator)

	bar := int(quarterNotes)/quarterNotesPerBar + 1
	beat := int(beats) + 1
	ticks := int(math.Mod(beats, 1.0)*960.0 + 0.5)

	return fmt.Sprintf("%d|%d|%03d", bar, beat, ticks)
}
