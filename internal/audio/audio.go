// Package audio plays short synthesized cues for comparisons and swaps.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 512

	compareFreq = 440.0
	swapFreq    = 660.0
	cueSeconds  = 0.06
)

// Player implements algo.Cues on top of a portaudio output stream. Cues
// are fire-and-forget: when the stream is not running they are dropped.
type Player struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	active bool
	freq   float64
	remain int
	phase  float64
	filter float64
	volume float64
}

func NewPlayer() *Player {
	return &Player{volume: 0.25}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	p.mu.Lock()
	p.stream = stream
	p.active = true
	p.mu.Unlock()
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	stream := p.stream
	p.stream = nil
	p.active = false
	p.mu.Unlock()

	if stream != nil {
		stream.Stop()
		stream.Close()
		portaudio.Terminate()
	}
}

func (p *Player) PlayComparisonCue() { p.trigger(compareFreq) }
func (p *Player) PlaySwapCue()       { p.trigger(swapFreq) }

func (p *Player) trigger(freq float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.freq = freq
	p.remain = int(cueSeconds * SampleRate)
}

// triangle is softer than a square or saw wave at the same level.
func triangle(phase float64) float64 {
	ph := phase - math.Floor(phase)
	return 4.0*math.Abs(ph-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (p *Player) process(out [][]float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	total := int(cueSeconds * SampleRate)

	for i := range out[0] {
		var s float64
		if p.remain > 0 {
			env := float64(p.remain) / float64(total)
			s = triangle(p.phase) * env * env
			p.phase += p.freq * dt
			p.remain--
		}
		p.filter = lpf(s, 2000, dt, p.filter)
		v := float32(p.filter * p.volume)
		out[0][i] = v
		out[1][i] = v
	}
}
