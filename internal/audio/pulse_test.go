package audio

import (
	"context"
	"testing"

	"github.com/jfreymuth/pulse"
	"github.com/stretchr/testify/require"
)

func TestClipReadsInChunks(t *testing.T) {
	c := &clip{ctx: context.Background(), samples: []int16{1, 2, 3, 4, 5}}
	buf := make([]int16, 2)

	n, err := c.read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []int16{1, 2}, buf)

	n, err = c.read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = c.read(buf)
	require.ErrorIs(t, err, pulse.EndOfData)
	require.Equal(t, 1, n)
	require.Equal(t, int16(5), buf[0])
}

func TestClipStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &clip{ctx: ctx, samples: make([]int16, 100)}
	buf := make([]int16, 10)

	_, err := c.read(buf)
	require.NoError(t, err)
	cancel()
	n, err := c.read(buf)
	require.ErrorIs(t, err, pulse.EndOfData)
	require.Zero(t, n)
}

func TestPulsePlayerSkipsEmptyClip(t *testing.T) {
	p := NewPulsePlayer("")
	require.Equal(t, "ipachat", p.appName)
	require.NoError(t, p.Play(context.Background(), nil, 16000))
	require.NoError(t, p.Close())
}
