// Package speech renders phoneme previews for a voice and caches the results.
package speech

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jask/ipachat/internal/database/repository"
)

// DefaultSampleRate is the PCM rate used when none is configured.
const DefaultSampleRate = 16000

// Synthesizer turns a phoneme spoken by a voice into mono 16-bit PCM.
type Synthesizer interface {
	Synthesize(ctx context.Context, voice repository.Voice, p repository.Phoneme) ([]int16, error)
	SampleRate() int
}

// closureGap is the silence between the beats of a multi-part articulation.
const closureGap = 15 * time.Millisecond

// segment is one beat of an articulation: a voiced source made of harmonics of
// the pitch, optionally mixed with frication noise.
type segment struct {
	pitchRatio float64
	length     time.Duration
	gain       float64
	attack     time.Duration
	release    time.Duration
	harmonics  []float64 // relative weights of f0, 2f0, 3f0...
	noise      float64   // 0 = fully voiced, 1 = pure noise
}

var (
	vowelHarmonics  = []float64{1, 0.55, 0.3, 0.15}
	nasalHarmonics  = []float64{1, 0.2}
	liquidHarmonics = []float64{1, 0.4, 0.1}
	pureTone        = []float64{1}
)

// articulate maps a phoneme class onto the segments that imitate it.
func articulate(typ repository.PhonemeType) ([]segment, error) {
	switch typ {
	case repository.PhonemeVowel:
		return []segment{{pitchRatio: 1, length: 220 * time.Millisecond, gain: 0.22, attack: 5 * time.Millisecond, release: 5 * time.Millisecond, harmonics: vowelHarmonics}}, nil
	case repository.PhonemeNasal:
		return []segment{{pitchRatio: 0.75, length: 160 * time.Millisecond, gain: 0.12, attack: 5 * time.Millisecond, release: 5 * time.Millisecond, harmonics: nasalHarmonics}}, nil
	case repository.PhonemePlosive:
		return []segment{{pitchRatio: 2, length: 40 * time.Millisecond, gain: 0.25, attack: time.Millisecond, release: 4 * time.Millisecond, harmonics: pureTone, noise: 0.5}}, nil
	case repository.PhonemeFricative:
		return []segment{{pitchRatio: 3, length: 140 * time.Millisecond, gain: 0.10, attack: 5 * time.Millisecond, release: 5 * time.Millisecond, harmonics: pureTone, noise: 0.8}}, nil
	case repository.PhonemeAffricate:
		return []segment{
			{pitchRatio: 2, length: 35 * time.Millisecond, gain: 0.25, attack: time.Millisecond, release: 3 * time.Millisecond, harmonics: pureTone, noise: 0.5},
			{pitchRatio: 3, length: 110 * time.Millisecond, gain: 0.10, attack: 5 * time.Millisecond, release: 5 * time.Millisecond, harmonics: pureTone, noise: 0.8},
		}, nil
	case repository.PhonemeApproximant, repository.PhonemeLateral:
		return []segment{{pitchRatio: 1.25, length: 150 * time.Millisecond, gain: 0.16, attack: 5 * time.Millisecond, release: 5 * time.Millisecond, harmonics: liquidHarmonics}}, nil
	case repository.PhonemeTrill:
		beat := segment{pitchRatio: 1.5, length: 30 * time.Millisecond, gain: 0.18, attack: 2 * time.Millisecond, release: 3 * time.Millisecond, harmonics: liquidHarmonics}
		return []segment{beat, beat, beat}, nil
	case repository.PhonemeTap:
		return []segment{{pitchRatio: 1.5, length: 25 * time.Millisecond, gain: 0.18, attack: 2 * time.Millisecond, release: 3 * time.Millisecond, harmonics: liquidHarmonics}}, nil
	default:
		return nil, fmt.Errorf("unknown phoneme type %q", typ)
	}
}

// ToneSynthesizer imitates a phoneme with additive harmonics whose pitch follows
// the voice and whose shape follows the phoneme class.
type ToneSynthesizer struct {
	Rate int
}

// NewToneSynthesizer returns a synthesizer at rate, or DefaultSampleRate when rate <= 0.
func NewToneSynthesizer(rate int) *ToneSynthesizer {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &ToneSynthesizer{Rate: rate}
}

func (s *ToneSynthesizer) SampleRate() int { return s.Rate }

func (s *ToneSynthesizer) Synthesize(ctx context.Context, voice repository.Voice, p repository.Phoneme) ([]int16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if voice.PitchHz <= 0 {
		return nil, fmt.Errorf("synthesize %s: voice %q has no pitch", p.Symbol, voice.Name)
	}
	segs, err := articulate(p.Type)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", p.Symbol, err)
	}

	gap := s.frames(closureGap)
	total := gap * (len(segs) - 1)
	for _, seg := range segs {
		total += s.frames(seg.length)
	}
	pcm := make([]int16, total)
	// noise is seeded from the symbol so a preview always sounds the same
	rng := newNoise(p.Symbol)
	at := 0
	for i, seg := range segs {
		if i > 0 {
			at += gap
		}
		at += s.voice(pcm[at:], seg, voice.PitchHz, rng)
	}
	return pcm, nil
}

// voice writes seg into dst and returns the frames used.
func (s *ToneSynthesizer) voice(dst []int16, seg segment, pitch float64, rng *noise) int {
	n := min(s.frames(seg.length), len(dst))
	attack := max(1, s.frames(seg.attack))
	release := max(1, s.frames(seg.release))

	var norm float64
	for _, w := range seg.harmonics {
		norm += w
	}
	if norm == 0 {
		norm = 1
	}
	f0 := pitch * seg.pitchRatio
	nyquist := float64(s.Rate) / 2

	for i := 0; i < n; i++ {
		env := math.Min(1, math.Min(float64(i)/float64(attack), float64(n-1-i)/float64(release)))
		t := float64(i) / float64(s.Rate)

		var voiced float64
		for h, w := range seg.harmonics {
			f := f0 * float64(h+1)
			if f >= nyquist {
				break
			}
			voiced += w * math.Sin(2*math.Pi*f*t)
		}
		voiced /= norm

		sample := (1-seg.noise)*voiced + seg.noise*rng.next()
		dst[i] = int16(math.Round(sample * seg.gain * env * math.MaxInt16))
	}
	return n
}

func (s *ToneSynthesizer) frames(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * float64(s.Rate)))
}

// noise is a small xorshift generator producing values in [-1, 1).
type noise struct{ state uint32 }

func newNoise(seed string) *noise {
	h := uint32(2166136261)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= 16777619
	}
	if h == 0 {
		h = 1
	}
	return &noise{state: h}
}

func (n *noise) next() float64 {
	n.state ^= n.state << 13
	n.state ^= n.state >> 17
	n.state ^= n.state << 5
	return float64(n.state)/float64(1<<31) - 1
}
