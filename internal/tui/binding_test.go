package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBindingWritesThroughToCallerState(t *testing.T) {
	lang := "en-US"
	b := Bind(&lang)

	require.Equal(t, "en-US", b.Get())
	b.Set("de-DE")
	require.Equal(t, "de-DE", lang)
	require.Equal(t, "de-DE", b.Get())
}

func TestBindingNilUsesZeroValue(t *testing.T) {
	b := Bind[[]string](nil)
	require.Nil(t, b.Get())
	b.Set([]string{"a"})
	require.Equal(t, []string{"a"}, b.Get())
}

func TestBindingSubscribers(t *testing.T) {
	b := Bind[int](nil)
	var first, second []int
	cancel := b.Subscribe(func(v int) { first = append(first, v) })
	b.Subscribe(func(v int) { second = append(second, v) })

	b.Set(1)
	cancel()
	b.Set(2)

	require.Equal(t, []int{1}, first)
	require.Equal(t, []int{1, 2}, second)

	// cancelling twice is harmless
	cancel()
	b.Set(3)
	require.Equal(t, []int{1, 2, 3}, second)
}
