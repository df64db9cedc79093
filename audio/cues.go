package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue identifies a simulation event with a sound
type Cue uint8

const (
	CueRestart Cue = iota
	CuePause
	CueResume
	CueLayout
	CueSnapshot
)

// cueTones lists each cue's notes, played in sequence
var cueTones = map[Cue][]tone{
	// Rising fifth
	CueRestart: {
		{440, WaveTriangle, 80 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond, 0.6},
		{660, WaveTriangle, 120 * time.Millisecond, 5 * time.Millisecond, 80 * time.Millisecond, 0.6},
	},
	CuePause:  {{330, WaveSine, 90 * time.Millisecond, 5 * time.Millisecond, 60 * time.Millisecond, 0.7}},
	CueResume: {{495, WaveSine, 90 * time.Millisecond, 5 * time.Millisecond, 60 * time.Millisecond, 0.7}},
	CueLayout: {{880, WaveSine, 60 * time.Millisecond, 2 * time.Millisecond, 50 * time.Millisecond, 0.5}},
	CueSnapshot: {
		{1320, WaveSquare, 30 * time.Millisecond, 1 * time.Millisecond, 20 * time.Millisecond, 0.2},
		{1760, WaveSquare, 30 * time.Millisecond, 1 * time.Millisecond, 20 * time.Millisecond, 0.2},
	},
}

// CueDuration returns the total length of a cue, 0 for unknown cues
func CueDuration(c Cue) time.Duration {
	var d time.Duration
	for _, t := range cueTones[c] {
		d += t.length
	}
	return d
}

// NewCue builds the streamer for c at the given master volume, nil for unknown cues
func NewCue(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	tones := cueTones[c]
	if len(tones) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		parts[i] = t.stream(rate)
	}
	// Volume is in log2 steps; zero or less has no log and renders silent
	master := &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Silent: volume <= 0}
	if volume > 0 {
		master.Volume = math.Log2(volume)
	}
	return master
}
