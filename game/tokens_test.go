package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCycle(t *testing.T) {
	t.Run("starts on the first value", func(t *testing.T) {
		c := NewCycle([]int{1, 2, 3})
		require.Equal(t, 1, c.Current(), "Fresh cycle should sit on the first value")
	})

	t.Run("next advances then returns", func(t *testing.T) {
		c := NewCycle([]int{1, 2, 3})
		require.Equal(t, 2, c.Next(), "First Next should land on the second value")
		require.Equal(t, 2, c.Current(), "Current should follow Next")
	})

	t.Run("wraps around", func(t *testing.T) {
		c := NewCycle([]int{1, 2, 3})
		c.Next()
		c.Next()
		require.Equal(t, 1, c.Next(), "Next past the end should wrap to the first value")
	})

	t.Run("set lands on a member", func(t *testing.T) {
		c := NewOpcodeCycle()
		require.NoError(t, c.Set("mul"))
		require.Equal(t, "mul", c.Current())
		require.Equal(t, 4, c.Index(), "mul is the fifth mnemonic")
	})

	t.Run("set rejects a non-member", func(t *testing.T) {
		c := NewIndexCycle()
		require.Error(t, c.Set(10), "Indices are single-digit")
	})

	t.Run("panics on empty values", func(t *testing.T) {
		require.Panics(t, func() {
			NewCycle([]int{})
		}, "A cycle needs at least one value")
	})
}

func TestTokenCycles(t *testing.T) {
	t.Run("increment cycle spans both signs", func(t *testing.T) {
		c := NewIncrementCycle()
		require.Equal(t, 10, c.Len())
		require.Equal(t, -10.0, c.Current(), "First increment is the largest negative step")
	})

	t.Run("index cycle covers 0..9", func(t *testing.T) {
		c := NewIndexCycle()
		require.Equal(t, MaxIndex+1, c.Len())
		require.Equal(t, 0, c.Current())
	})
}
