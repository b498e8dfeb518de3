package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	t.Run("scalar assignment", func(t *testing.T) {
		st, err := ParseStatement("    s2 = 0.010")
		require.NoError(t, err)
		require.Equal(t, ScalarAssign, st.Op)
		require.Equal(t, "let", st.Opcode.Current())
		require.Equal(t, 2, st.Dst.Current())
		require.InDelta(t, 0.010, st.Imm, 1e-9)
	})

	t.Run("negative immediate", func(t *testing.T) {
		st, err := ParseStatement("s3 = -1.500")
		require.NoError(t, err)
		require.Equal(t, ScalarAssign, st.Op)
		require.InDelta(t, -1.5, st.Imm, 1e-9)
	})

	t.Run("dot product", func(t *testing.T) {
		st, err := ParseStatement("    s1 = dot(v0, v1)")
		require.NoError(t, err)
		require.Equal(t, DotProduct, st.Op)
		require.Equal(t, "dot", st.Opcode.Current())
		require.Equal(t, 1, st.Dst.Current())
		require.Equal(t, 0, st.Src1.Current())
		require.Equal(t, 1, st.Src2.Current())
	})

	t.Run("scalar forms", func(t *testing.T) {
		sub, err := ParseStatement("s3 = s0 - s1")
		require.NoError(t, err)
		require.Equal(t, Subtraction, sub.Op)

		mul, err := ParseStatement("s4 = s3 * s2")
		require.NoError(t, err)
		require.Equal(t, Multiplication, mul.Op)
	})

	t.Run("vector forms", func(t *testing.T) {
		muv, err := ParseStatement("v2 = v0 * s4")
		require.NoError(t, err)
		require.Equal(t, VectorScalarMult, muv.Op)
		require.Equal(t, "muv", muv.Opcode.Current())

		add, err := ParseStatement("v1 = v1 + v2")
		require.NoError(t, err)
		require.Equal(t, VectorAdd, add.Op)
		require.Equal(t, "add", add.Opcode.Current())
	})

	t.Run("section label", func(t *testing.T) {
		st, err := ParseStatement("def Predict():")
		require.NoError(t, err)
		require.True(t, st.IsLabel())
		require.Equal(t, "Predict", st.Label)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := ParseStatement("while true: spin()")
		require.Error(t, err)
	})
}

func TestStatementSerialization(t *testing.T) {
	t.Run("file form roundtrips", func(t *testing.T) {
		for _, line := range []string{
			"    s1 = dot(v0, v1)",
			"    s3 = s0 - s1",
			"    s4 = s3 * s2",
			"    v2 = v0 * s4",
			"    v1 = v1 + v2",
			"def Learn():",
		} {
			st, err := ParseStatement(line)
			require.NoError(t, err)
			require.Equal(t, line, st.FileString(), "Line %q should survive a parse/serialize roundtrip", line)
		}
	})

	t.Run("immediates serialize through the 8-bit codec", func(t *testing.T) {
		st, err := ParseStatement("s2 = 0.010")
		require.NoError(t, err)
		// 0.010 decodes from its nearest representable value back to 0.010
		// at 3 decimals
		require.Equal(t, "    s2 = 0.010", st.FileString())
	})

	t.Run("display form", func(t *testing.T) {
		st, err := ParseStatement("s1 = dot(v0, v1)")
		require.NoError(t, err)
		require.Equal(t, "dot 1 0 1", st.DisplayString())

		label, err := ParseStatement("def Setup():")
		require.NoError(t, err)
		require.Equal(t, "label Setup:", label.DisplayString())
	})
}

func TestStatementOneHot(t *testing.T) {
	t.Run("every form is one word wide", func(t *testing.T) {
		for _, line := range []string{"s2 = 0.010", "s1 = dot(v0, v1)", "def Setup():"} {
			st, err := ParseStatement(line)
			require.NoError(t, err)
			require.Len(t, st.OneHot(false), WordBits)
			require.Len(t, st.OneHot(true), WordBits)
		}
	})

	t.Run("label encoding", func(t *testing.T) {
		st, err := ParseStatement("def Setup():")
		require.NoError(t, err)
		enc := st.OneHot(true)
		require.Equal(t, int8(1), enc[0], "Leading cursor bit")
		require.Equal(t, int8(1), enc[1+5], "Labels use opcode slot 5")
		require.Equal(t, []int8{0, 0, 1}, enc[7:10], "Setup label bits")
	})

	t.Run("cursor bit follows the cursor", func(t *testing.T) {
		st, err := ParseStatement("s1 = dot(v0, v1)")
		require.NoError(t, err)

		enc := st.OneHot(true)
		require.Equal(t, int8(1), enc[0], "Cursor starts on the opcode")

		require.NoError(t, st.CursorRight())
		enc = st.OneHot(true)
		require.Equal(t, int8(0), enc[0])
		require.Equal(t, int8(1), enc[1+6+3], "Cursor bit precedes the destination field")
	})

	t.Run("cursor off hides all cursor bits", func(t *testing.T) {
		st, err := ParseStatement("s1 = dot(v0, v1)")
		require.NoError(t, err)
		enc := st.OneHot(false)
		for _, pos := range []int{0, 10, 21, 32} {
			require.Equal(t, int8(0), enc[pos], "Cursor bit at %d should be off", pos)
		}
	})

	t.Run("destination one hot", func(t *testing.T) {
		st, err := ParseStatement("s1 = dot(v0, v1)")
		require.NoError(t, err)
		enc := st.OneHot(false)
		// layout: cursor(1) opcode(6) label(3) cursor(1) dst(10)
		dst := enc[11:21]
		require.Equal(t, int8(1), dst[1], "Destination register 1")
		var sum int
		for _, b := range dst {
			sum += int(b)
		}
		require.Equal(t, 1, sum, "Exactly one destination bit set")
	})
}

func TestStatementEditing(t *testing.T) {
	t.Run("cursor walks a three operand statement", func(t *testing.T) {
		st, err := ParseStatement("s3 = s0 - s1")
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			require.NoError(t, st.CursorRight())
		}
		err = st.CursorRight()
		require.ErrorIs(t, err, ErrNextStatement, "Fourth move leaves the statement")
	})

	t.Run("let statements end after the immediate", func(t *testing.T) {
		st, err := ParseStatement("s2 = 0.010")
		require.NoError(t, err)
		require.NoError(t, st.CursorRight())
		require.NoError(t, st.CursorRight())
		require.ErrorIs(t, st.CursorRight(), ErrNextStatement)
	})

	t.Run("labels are a single stop", func(t *testing.T) {
		st, err := ParseStatement("def Learn():")
		require.NoError(t, err)
		require.ErrorIs(t, st.CursorRight(), ErrNextStatement)
	})

	t.Run("increment cycles the opcode", func(t *testing.T) {
		st, err := ParseStatement("s1 = dot(v0, v1)")
		require.NoError(t, err)
		st.IncrementToken()
		require.Equal(t, "sub", st.Opcode.Current(), "dot is followed by sub")
	})

	t.Run("increment bumps the immediate by the selected step", func(t *testing.T) {
		st, err := ParseStatement("s2 = 0.010")
		require.NoError(t, err)
		require.NoError(t, st.CursorRight())
		require.NoError(t, st.CursorRight())

		// default step is -10, so the value clamps on the negative side
		st.IncrementToken()
		require.InDelta(t, -9.99, st.Imm, 1e-9)
	})

	t.Run("increment step is selectable", func(t *testing.T) {
		st, err := ParseStatement("s2 = 0.010")
		require.NoError(t, err)
		st.CycleIncrement()
		require.Equal(t, -1.0, st.Incr.Current())
	})

	t.Run("labels ignore token edits", func(t *testing.T) {
		st, err := ParseStatement("def Setup():")
		require.NoError(t, err)
		st.IncrementToken()
		require.Equal(t, "Setup", st.Label)
	})

	t.Run("immediate clamps at the top of the range", func(t *testing.T) {
		st, err := ParseStatement("s2 = 9.000")
		require.NoError(t, err)
		require.NoError(t, st.CursorRight())
		require.NoError(t, st.CursorRight())
		for i := 0; i < 5; i++ {
			st.Incr.Set(10.0)
			st.IncrementToken()
		}
		require.Equal(t, 10.0, st.Imm)
	})
}

func TestCursorDisplayColumn(t *testing.T) {
	st, err := ParseStatement("s3 = s0 - s1")
	require.NoError(t, err)
	require.Equal(t, 0, st.CursorDisplayColumn())
	require.NoError(t, st.CursorRight())
	require.Equal(t, 4, st.CursorDisplayColumn())
	require.NoError(t, st.CursorRight())
	require.Equal(t, 6, st.CursorDisplayColumn())
}

func TestNextStatementSentinel(t *testing.T) {
	st, _ := ParseStatement("def Setup():")
	err := st.CursorRight()
	require.True(t, errors.Is(err, ErrNextStatement))
}
