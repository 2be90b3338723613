// Package audio plays voice previews, one clip at a time.
package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jask/ipachat/internal/logging"
)

// ErrMuted is returned by Play while the manager is muted.
var ErrMuted = errors.New("audio muted")

// Manager serializes playback through a Player and applies a per-clip timeout.
type Manager struct {
	player  Player
	timeout time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	muted atomic.Bool
}

// NewManager builds a Manager. A zero timeout means clips run until done or ctx ends.
func NewManager(player Player, timeout time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{player: player, timeout: timeout, logger: logger}
}

func (m *Manager) SetMuted(muted bool) { m.muted.Store(muted) }

func (m *Manager) Muted() bool { return m.muted.Load() }

// Play blocks until the clip has finished. Concurrent calls queue behind each other.
func (m *Manager) Play(ctx context.Context, samples []int16, rate int) error {
	if m.Muted() {
		return ErrMuted
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	start := time.Now()
	if err := m.player.Play(ctx, samples, rate); err != nil {
		m.logger.Warn("preview playback failed", "error", err, "samples", len(samples))
		return err
	}
	m.logger.Debug("preview played", "samples", len(samples), "rate", rate, "elapsed", time.Since(start))
	return nil
}
