package game

import (
	"fmt"
	"strings"
)

// MaxLines is the fixed number of encoded program lines; shorter programs
// pad with zero words.
const MaxLines = 20

// DefaultProgram is the editable starting point: a linear learner
// skeleton. v0 holds the features, s0 the label, s1 the prediction.
const DefaultProgram = `def Setup():
    s2 = 0.010
def Predict():
    s1 = dot(v0, v1)
def Learn():
    s3 = s0 - s1
    s4 = s3 * s2
    v2 = v0 * s4
    v1 = v1 + v2
`

// Program is an ordered list of statements, labels included.
type Program []*Statement

// ParseProgram parses program text, one statement per non-empty line.
func ParseProgram(src string) (Program, error) {
	var prog Program
	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		st, err := ParseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		prog = append(prog, st)
	}
	if len(prog) > MaxLines {
		return nil, fmt.Errorf("program has %d lines, max is %d", len(prog), MaxLines)
	}
	return prog, nil
}

// MustParseProgram is ParseProgram for known-good sources.
func MustParseProgram(src string) Program {
	prog, err := ParseProgram(src)
	if err != nil {
		panic(err)
	}
	return prog
}

// Encode renders the program as MaxLines 64-bit words, with the cursor
// bits lit on the active line. cursorLine -1 hides the cursor.
func (p Program) Encode(cursorLine int) []int8 {
	obs := make([]int8, 0, MaxLines*WordBits)
	for i, st := range p {
		obs = append(obs, st.OneHot(i == cursorLine)...)
	}
	for i := len(p); i < MaxLines; i++ {
		obs = append(obs, make([]int8, WordBits)...)
	}
	return obs
}

// FileString serializes the program back into text form.
func (p Program) FileString() string {
	var b strings.Builder
	for _, st := range p {
		b.WriteString(st.FileString())
		b.WriteByte('\n')
	}
	return b.String()
}

// Section returns the statements under the given label, in order.
func (p Program) Section(label string) []*Statement {
	var out []*Statement
	active := false
	for _, st := range p {
		if st.IsLabel() {
			active = st.Label == label
			continue
		}
		if active {
			out = append(out, st)
		}
	}
	return out
}
