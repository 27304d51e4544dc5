package transport

import (
	"sync"
	"testing"
	"time"
)

func TestCellHoldsDefaultPosition(t *testing.T) {
	c := NewCell()
	if got, want := c.Get(), DefaultPosition(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCellReturnsLastCompletedSet(t *testing.T) {
	c := NewCell()
	for i := 1; i <= 3; i++ {
		p := Position{TempoBPM: float64(100 + i), PPQPosition: float64(i)}
		c.Set(p)
		if got := c.Get(); got != p {
			t.Fatalf("after Set #%d: Get() = %+v, want %+v", i, got, p)
		}
	}
}

// TestCellConcurrent hammers the cell from a writer and several readers and
// checks that reads are never torn: every position written keeps
// TimeInSeconds == PPQPosition/2, so any mixed-up copy is detectable.
func TestCellConcurrent(t *testing.T) {
	c := NewCell()
	stop := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ppq := 0.0
		for {
			select {
			case <-stop:
				return
			default:
			}
			ppq += 0.25
			c.Set(Position{
				TempoBPM:           120,
				TimeSigNumerator:   4,
				TimeSigDenominator: 4,
				PPQPosition:        ppq,
				TimeInSeconds:      ppq / 2,
				IsPlaying:          true,
			})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deadline := time.Now().Add(50 * time.Millisecond)
			for time.Now().Before(deadline) {
				p := c.Get()
				if p.PPQPosition == 0 {
					continue // writer has not landed yet
				}
				if p.TimeInSeconds != p.PPQPosition/2 {
					t.Errorf("torn read: ppq=%v seconds=%v", p.PPQPosition, p.TimeInSeconds)
					return
				}
			}
		}()
	}

	time.Sleep(60 * time.Millisecond)
	close(stop)
	wg.Wait()
}

func TestTrackInfoUpdateNotifies(t *testing.T) {
	var info TrackInfo
	notified := make(chan TrackProperties, 1)
	info.OnChange(func(p TrackProperties) { notified <- p })

	want := TrackProperties{Name: "Drums", Colour: 0xff336699}
	info.Update(want)

	if got := info.Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	select {
	case got := <-notified:
		if got != want {
			t.Errorf("notified with %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Error("OnChange callback was not invoked")
	}
}
