package engine

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

const chimeVolume = 0.45

// AudioSystem plays procedural state-change chimes. It is a collaborator of
// the demo layer: the engine itself never triggers audio.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// chimeFreqs gives each emotion a recognizable two-partial voice.
var chimeFreqs = [emotionCount][2]float64{
	EmotionNeutral:    {392.0, 587.3},  // G4 + D5
	EmotionJoy:        {523.3, 784.0},  // C5 + G5
	EmotionReflective: {293.7, 440.0},  // D4 + A4
	EmotionCurious:    {440.0, 659.3},  // A4 + E5
	EmotionExcited:    {587.3, 880.0},  // D5 + A5
	EmotionEmpathetic: {349.2, 523.3},  // F4 + C5
	EmotionCalm:       {261.6, 392.0},  // C4 + G4
}

// PlayStateChime plays the chime for an emotional state. No-op when audio
// never initialized or the context is not ready yet.
func PlayStateChime(em Emotion) {
	if globalAudio == nil || em >= emotionCount {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := genChime(chimeFreqs[em][0], chimeFreqs[em][1])
	go func() {
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(chimeVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// genChime synthesizes a short two-partial bell: fundamental plus a softer
// upper partial, exponential decay, a few ms of attack to avoid clicks.
func genChime(f0, f1 float64) []float32 {
	const dur = 0.55
	n := int(dur * SampleRate)
	out := make([]float32, n*ChannelCount)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-4.5 * t)
		if t < 0.008 {
			env *= t / 0.008
		}
		s := 0.62*math.Sin(2*math.Pi*f0*t) + 0.38*math.Sin(2*math.Pi*f1*t)
		v := float32(s * env)
		out[i*2] = v
		out[i*2+1] = v
	}
	return out
}

// soundReader streams float32 samples as little-endian bytes.
type soundReader struct {
	data []float32
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := 0
	for r.pos < len(r.data) && n+4 <= len(p) {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(r.data[r.pos]))
		r.pos++
		n += 4
	}
	return n, nil
}
