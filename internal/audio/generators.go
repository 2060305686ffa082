package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// LaserGenerator is a falling square-ish zap, the tank's shot.
type LaserGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
}

func NewLaserGenerator(sr beep.SampleRate) *LaserGenerator {
	return &LaserGenerator{sr: sr}
}

func (g *LaserGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sweep 1400Hz down towards 300Hz.
		freq := 300 + 1100*math.Exp(-t*25)
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		tone := 0.6*math.Sin(2*math.Pi*g.phase) + 0.2*math.Sin(4*math.Pi*g.phase)
		envelope := math.Min(t/0.004, 1.0) * math.Exp(-t*18)
		sample := 0.25 * envelope * tone

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *LaserGenerator) Err() error {
	return nil
}

// ExplosionGenerator is filtered noise over a low rumble.
type ExplosionGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	last float64
}

func NewExplosionGenerator(sr beep.SampleRate, seed int64) *ExplosionGenerator {
	return &ExplosionGenerator{sr: sr, seed: seed}
}

func (g *ExplosionGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 7)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// One-pole low-pass keeps it a boom rather than hiss.
		g.last += 0.08 * (noise - g.last)

		rumble := 0.35 * math.Sin(2*math.Pi*55*t)
		sample := envelope * (0.6*g.last + rumble) * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ExplosionGenerator) Err() error {
	return nil
}
