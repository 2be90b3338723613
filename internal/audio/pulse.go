package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/jfreymuth/pulse"
)

// Player plays mono 16-bit PCM.
type Player interface {
	Play(ctx context.Context, samples []int16, rate int) error
}

// PulsePlayer holds one connection to the PulseAudio (or PipeWire-pulse) server
// and opens a playback stream per clip. The connection is made on first use and
// dropped after a failed stream so the next clip reconnects.
type PulsePlayer struct {
	appName string

	mu     sync.Mutex
	client *pulse.Client
}

func NewPulsePlayer(appName string) *PulsePlayer {
	if appName == "" {
		appName = "ipachat"
	}
	return &PulsePlayer{appName: appName}
}

func (p *PulsePlayer) Play(ctx context.Context, samples []int16, rate int) error {
	if len(samples) == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	client, err := p.connectLocked()
	if err != nil {
		return err
	}
	src := &clip{ctx: ctx, samples: samples}
	stream, err := client.NewPlayback(pulse.Int16Reader(src.read),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(rate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName(p.appName+" voice preview"),
	)
	if err != nil {
		p.dropLocked()
		return fmt.Errorf("open playback: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		p.dropLocked()
		return fmt.Errorf("playback: %w", err)
	}
	return ctx.Err()
}

// Close disconnects from the server.
func (p *PulsePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropLocked()
	return nil
}

func (p *PulsePlayer) connectLocked() (*pulse.Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	client, err := pulse.NewClient(
		pulse.ClientApplicationName(p.appName),
		pulse.ClientApplicationIconName("audio-speakers"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *PulsePlayer) dropLocked() {
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}

// clip feeds samples to a playback stream and ends early once ctx is done.
type clip struct {
	ctx     context.Context
	samples []int16
	pos     int
}

func (c *clip) read(buf []int16) (int, error) {
	if c.ctx.Err() != nil {
		return 0, pulse.EndOfData
	}
	n := copy(buf, c.samples[c.pos:])
	c.pos += n
	if c.pos == len(c.samples) {
		return n, pulse.EndOfData
	}
	return n, nil
}
