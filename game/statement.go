package game

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Operation classifies a parsed statement.
type Operation int

const (
	ScalarAssign Operation = iota
	DotProduct
	Subtraction
	Multiplication
	VectorScalarMult
	VectorAdd
	SectionLabel
)

const (
	// WordBits is the width of one encoded statement.
	WordBits = 64

	indentCount = 4
)

var indent = strings.Repeat(" ", indentCount)

// ErrNextStatement signals that the cursor moved past the end of a
// statement and editing should continue on the next line.
var ErrNextStatement = errors.New("cursor past end of statement")

type pattern struct {
	op Operation
	re *regexp.Regexp
}

// Ordered: first match wins.
var patterns = []pattern{
	{ScalarAssign, regexp.MustCompile(`s(\d+)\s*=\s*(-?\d+(?:\.\d+)?)`)},
	{DotProduct, regexp.MustCompile(`s(\d+)\s*=\s*dot\(v(\d+),\s*v(\d+)\)`)},
	{Subtraction, regexp.MustCompile(`s(\d+)\s*=\s*s(\d+)\s*-\s*s(\d+)`)},
	{Multiplication, regexp.MustCompile(`s(\d+)\s*=\s*s(\d+)\s*\*\s*s(\d+)`)},
	{VectorScalarMult, regexp.MustCompile(`v(\d+)\s*=\s*v(\d+)\s*\*\s*s(\d+)`)},
	{VectorAdd, regexp.MustCompile(`v(\d+)\s*=\s*v(\d+)\s*\+\s*v(\d+)`)},
	{SectionLabel, regexp.MustCompile(`(Setup|Predict|Learn)`)},
}

// Statement is one editable program line: an opcode plus register operands,
// or a scalar assignment with an 8-bit immediate, or a section label. The
// cursor walks its tokens left to right.
type Statement struct {
	Op      Operation
	Opcode  *Cycle[string]
	Dst     *Cycle[int]
	Src1    *Cycle[int]
	Src2    *Cycle[int]
	Incr    *Cycle[float64]
	Label   string
	Imm     float64
	Cursor  int
	rawLine string
}

// ParseStatement parses one line of program text.
func ParseStatement(line string) (*Statement, error) {
	st := &Statement{
		Opcode:  NewOpcodeCycle(),
		Dst:     NewIndexCycle(),
		Src1:    NewIndexCycle(),
		Src2:    NewIndexCycle(),
		Incr:    NewIncrementCycle(),
		rawLine: strings.TrimSpace(line),
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(st.rawLine)
		if m == nil {
			continue
		}
		st.Op = p.op

		if p.op == SectionLabel {
			st.Label = m[1]
			return st, nil
		}

		dst, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}
		if err := st.Dst.Set(dst); err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}

		if p.op == ScalarAssign {
			if err := st.Opcode.Set("let"); err != nil {
				return nil, err
			}
			imm, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
			}
			st.Imm = imm
			return st, nil
		}

		if err := st.Opcode.Set(mnemonicFor(p.op)); err != nil {
			return nil, err
		}
		src1, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}
		src2, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}
		if err := st.Src1.Set(src1); err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}
		if err := st.Src2.Set(src2); err != nil {
			return nil, fmt.Errorf("parse %q: %w", st.rawLine, err)
		}
		return st, nil
	}

	return nil, fmt.Errorf("invalid statement: %q", line)
}

func mnemonicFor(op Operation) string {
	switch op {
	case ScalarAssign:
		return "let"
	case DotProduct:
		return "dot"
	case Subtraction:
		return "sub"
	case Multiplication:
		return "mul"
	case VectorScalarMult:
		return "muv"
	case VectorAdd:
		return "add"
	}
	panic(fmt.Sprintf("no mnemonic for operation %d", op))
}

// IsLabel reports whether the statement is a section label.
func (s *Statement) IsLabel() bool {
	return s.Op == SectionLabel
}

// FileString serializes the statement back into program-text form.
func (s *Statement) FileString() string {
	switch s.Op {
	case ScalarAssign:
		return fmt.Sprintf("%ss%d = %.3f", indent, s.Dst.Current(), RoundtripFloat8(s.Imm))
	case DotProduct:
		return fmt.Sprintf("%ss%d = dot(v%d, v%d)", indent, s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	case Subtraction:
		return fmt.Sprintf("%ss%d = s%d - s%d", indent, s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	case Multiplication:
		return fmt.Sprintf("%ss%d = s%d * s%d", indent, s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	case VectorScalarMult:
		return fmt.Sprintf("%sv%d = v%d * s%d", indent, s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	case VectorAdd:
		return fmt.Sprintf("%sv%d = v%d + v%d", indent, s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	case SectionLabel:
		return fmt.Sprintf("def %s():", s.Label)
	}
	return s.rawLine
}

// DisplayString serializes the statement in the compact on-screen form.
func (s *Statement) DisplayString() string {
	switch {
	case s.IsLabel():
		return fmt.Sprintf("label %s:", s.Label)
	case s.Opcode.Current() == "let":
		return fmt.Sprintf("let %d %.3f", s.Dst.Current(), s.Imm)
	default:
		return fmt.Sprintf("%s %d %d %d", s.Opcode.Current(), s.Dst.Current(), s.Src1.Current(), s.Src2.Current())
	}
}

func oneHot(width, value int) []int8 {
	v := make([]int8, width)
	if value >= 0 && value < width {
		v[value] = 1
	}
	return v
}

func cursorBit(on bool) []int8 {
	if on {
		return []int8{1}
	}
	return []int8{0}
}

// OneHot encodes the statement as a 64-bit vector:
//
//	bits | description
//	-----|------------
//	 6   | opcode / label
//	 3   | label type (Setup, Predict, Learn)
//	 1   | cursor
//	10   | destination index
//	 1   | cursor
//	10   | source index 1
//	 1   | cursor
//	10   | source index 2
//	 1   | cursor
//	 8   | immediate value (for opcode 'let')
//	10   | increment (for opcode 'let')
//	 2   | padding (unused)
//
// with a leading cursor bit before the opcode field. When cursor is false
// every cursor bit stays 0.
func (s *Statement) OneHot(cursor bool) []int8 {
	var enc []int8

	switch {
	case s.IsLabel():
		enc = append(enc, cursorBit(cursor)...)
		enc = append(enc, oneHot(6, 5)...)
		switch s.Label {
		case "Setup":
			enc = append(enc, 0, 0, 1)
		case "Predict":
			enc = append(enc, 0, 1, 0)
		case "Learn":
			enc = append(enc, 1, 0, 0)
		default:
			enc = append(enc, 0, 0, 0)
		}

	case s.Opcode.Current() == "let":
		constant := EncodeFloat8(s.Imm)
		constantBits := make([]int8, 8)
		for i := 0; i < 8; i++ {
			constantBits[7-i] = int8(constant >> i & 1)
		}
		incrIndex := s.Incr.Index()

		enc = append(enc, cursorBit(cursor && s.Cursor == 0)...)
		enc = append(enc, oneHot(6, 0)...)
		enc = append(enc, 0, 0, 0)
		enc = append(enc, cursorBit(cursor && s.Cursor == 1)...)
		enc = append(enc, oneHot(10, s.Dst.Current())...)
		enc = append(enc, make([]int8, 11)...)
		enc = append(enc, make([]int8, 11)...)
		enc = append(enc, cursorBit(cursor && s.Cursor == 2)...)
		enc = append(enc, constantBits...)
		enc = append(enc, oneHot(len(IncrementValues), incrIndex)...)

	default:
		opIndex := s.Opcode.Index()
		enc = append(enc, cursorBit(cursor && s.Cursor == 0)...)
		enc = append(enc, oneHot(6, opIndex)...)
		enc = append(enc, 0, 0, 0)
		enc = append(enc, cursorBit(cursor && s.Cursor == 1)...)
		enc = append(enc, oneHot(10, s.Dst.Current())...)
		enc = append(enc, cursorBit(cursor && s.Cursor == 2)...)
		enc = append(enc, oneHot(10, s.Src1.Current())...)
		enc = append(enc, cursorBit(cursor && s.Cursor == 3)...)
		enc = append(enc, oneHot(10, s.Src2.Current())...)
	}

	enc = append(enc, make([]int8, WordBits-len(enc))...)
	return enc
}

// IncrementToken bumps the token under the cursor, wrapping where the
// token cycles. For a 'let' immediate the configured increment step is
// added and the result clamped to the representable range. Labels are not
// editable.
func (s *Statement) IncrementToken() {
	if s.IsLabel() {
		return
	}
	switch s.Cursor {
	case 0:
		s.Opcode.Next()
	case 1:
		s.Dst.Next()
	default:
		if s.Opcode.Current() == "let" {
			if s.Cursor != 2 {
				panic(fmt.Sprintf("invalid cursor position %d for opcode 'let'", s.Cursor))
			}
			newValue := s.Imm + s.Incr.Current()
			sign := 1.0
			if newValue < 0 {
				sign = -1.0
			}
			abs := newValue * sign
			switch {
			case newValue == 0:
				// keep zero
			case abs < minImmediate:
				abs = minImmediate
			case abs > maxImmediate:
				abs = maxImmediate
			}
			// The encoding error exceeds the smaller increments on some
			// values, so the raw value is stored rather than its roundtrip.
			s.Imm = sign * abs
			return
		}
		switch s.Cursor {
		case 2:
			s.Src1.Next()
		case 3:
			s.Src2.Next()
		default:
			panic(fmt.Sprintf("invalid cursor position %d for opcode %q", s.Cursor, s.Opcode.Current()))
		}
	}
}

// CursorRight moves the cursor one token right. At the end of the
// statement it returns ErrNextStatement instead of moving.
func (s *Statement) CursorRight() error {
	if s.IsLabel() ||
		(s.Opcode.Current() == "let" && s.Cursor == 2) ||
		s.Cursor == 3 {
		return ErrNextStatement
	}
	s.Cursor++
	return nil
}

// CycleIncrement selects the next increment step for immediate editing.
func (s *Statement) CycleIncrement() {
	s.Incr.Next()
}

// CursorDisplayColumn maps the cursor position to its display column. The
// mnemonic is always 3 characters and operands 1, so the mapping is
// uniform across operations.
func (s *Statement) CursorDisplayColumn() int {
	if s.Cursor == 0 {
		return 0
	}
	return len("mne") - 1 + len(" 1")*s.Cursor
}
