package host

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

type countingProcessor struct {
	prepared int32
	blocks   int32
	released int32
}

func (p *countingProcessor) PrepareToPlay(sampleRate float64, blockSize int) {
	atomic.AddInt32(&p.prepared, 1)
}

func (p *countingProcessor) ProcessBlock(buffer [][]float64, midi [][]byte) {
	atomic.AddInt32(&p.blocks, 1)
}

func (p *countingProcessor) ReleaseResources() {
	atomic.AddInt32(&p.released, 1)
}

func TestAdvanceWhilePlaying(t *testing.T) {
	c := NewClock(48000, 4800) // 0.1s per block
	c.Play()

	for i := 0; i < 10; i++ {
		c.Advance()
	}

	pos, ok := c.Position()
	if !ok {
		t.Fatal("Position() reported failure")
	}
	if math.Abs(pos.TimeInSeconds-1.0) > 1e-9 {
		t.Errorf("TimeInSeconds = %v, want 1.0", pos.TimeInSeconds)
	}
	// 120 bpm = 2 quarter notes per second
	if math.Abs(pos.PPQPosition-2.0) > 1e-9 {
		t.Errorf("PPQPosition = %v, want 2.0", pos.PPQPosition)
	}
	if !pos.IsPlaying || pos.IsRecording {
		t.Errorf("transport flags = playing:%v recording:%v", pos.IsPlaying, pos.IsRecording)
	}
}

func TestAdvanceIgnoredWhileStopped(t *testing.T) {
	c := NewClock(48000, 4800)
	c.Play()
	c.Advance()
	c.Stop()
	before, _ := c.Position()

	c.Advance()

	after, _ := c.Position()
	if before.PPQPosition != after.PPQPosition || before.TimeInSeconds != after.TimeInSeconds {
		t.Errorf("position moved while stopped: %+v -> %+v", before, after)
	}
}

func TestTempoAffectsSubsequentBlocks(t *testing.T) {
	c := NewClock(48000, 4800)
	c.Play()
	c.Advance() // 0.1s at 120 bpm = 0.2 ppq
	c.SetTempo(60)
	c.Advance() // 0.1s at 60 bpm = 0.1 ppq

	pos, _ := c.Position()
	if math.Abs(pos.PPQPosition-0.3) > 1e-9 {
		t.Errorf("PPQPosition = %v, want 0.3", pos.PPQPosition)
	}
	if pos.TempoBPM != 60 {
		t.Errorf("TempoBPM = %v, want 60", pos.TempoBPM)
	}
}

func TestLocate(t *testing.T) {
	c := NewClock(48000, 512)
	c.Locate(8.0)

	pos, _ := c.Position()
	if pos.PPQPosition != 8.0 {
		t.Errorf("PPQPosition = %v, want 8.0", pos.PPQPosition)
	}
	// 8 quarter notes at 120 bpm = 4 seconds
	if math.Abs(pos.TimeInSeconds-4.0) > 1e-9 {
		t.Errorf("TimeInSeconds = %v, want 4.0", pos.TimeInSeconds)
	}
}

func TestSettersRejectDegenerateValues(t *testing.T) {
	c := NewClock(48000, 512)
	c.SetTempo(0)
	c.SetTempo(-10)
	c.SetTimeSignature(0, 4)
	c.SetTimeSignature(4, 0)

	pos, _ := c.Position()
	if pos.TempoBPM != 120 || pos.TimeSigNumerator != 4 || pos.TimeSigDenominator != 4 {
		t.Errorf("degenerate values accepted: %+v", pos)
	}
}

func TestRunDrivesProcessorUntilCancelled(t *testing.T) {
	c := NewClock(48000, 480) // 10ms blocks
	c.Play()
	proc := &countingProcessor{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, proc) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancellation")
	}

	if atomic.LoadInt32(&proc.prepared) != 1 {
		t.Errorf("PrepareToPlay called %d times, want 1", proc.prepared)
	}
	if atomic.LoadInt32(&proc.blocks) == 0 {
		t.Error("ProcessBlock was never called")
	}
	if atomic.LoadInt32(&proc.released) != 1 {
		t.Errorf("ReleaseResources called %d times, want 1", proc.released)
	}
}
