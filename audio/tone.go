package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects a tone's waveform
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// at returns the waveform value for phase in [0, 1)
func (w Wave) at(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is one shaped note of a cue
type tone struct {
	freq    float64
	wave    Wave
	length  time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

// toneStream renders a tone sample by sample with its ramps applied inline
type toneStream struct {
	wave   Wave
	step   float64 // phase advance per sample
	gain   float64
	total  int
	attack int
	decay  int // release length in samples
	pos    int
	phase  float64
}

func (t tone) stream(rate beep.SampleRate) *toneStream {
	return &toneStream{
		wave:   t.wave,
		step:   t.freq / float64(rate),
		gain:   t.gain,
		total:  rate.N(t.length),
		attack: rate.N(t.attack),
		decay:  rate.N(t.release),
	}
}

// level is the gain at sample i: linear rise over attack, linear fall over release
func (s *toneStream) level(i int) float64 {
	g := 1.0
	if s.attack > 0 && i < s.attack {
		g = float64(i) / float64(s.attack)
	}
	if left := s.total - i; s.decay > 0 && left < s.decay {
		g = min(g, float64(left)/float64(s.decay))
	}
	return g * s.gain
}

func (s *toneStream) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), s.total-s.pos)
	if n <= 0 {
		return 0, false
	}
	for i := 0; i < n; i++ {
		v := s.wave.at(s.phase) * s.level(s.pos)
		samples[i] = [2]float64{v, v}
		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return n, true
}

func (s *toneStream) Err() error { return nil }
