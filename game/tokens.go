package game

import "fmt"

// Cycle is a wraparound cursor over a fixed set of token values. Next
// advances first and then reports the new value, so a fresh cycle sits on
// the first value until touched.
type Cycle[T comparable] struct {
	values []T
	index  int
}

func NewCycle[T comparable](values []T) *Cycle[T] {
	if len(values) == 0 {
		panic("cycle needs at least one value")
	}
	return &Cycle[T]{values: values}
}

func (c *Cycle[T]) Current() T {
	return c.values[c.index]
}

func (c *Cycle[T]) Next() T {
	c.index = (c.index + 1) % len(c.values)
	return c.values[c.index]
}

// Set advances the cycle until it sits on value.
func (c *Cycle[T]) Set(value T) error {
	for i, v := range c.values {
		if v == value {
			c.index = i
			return nil
		}
	}
	return fmt.Errorf("value %v not in cycle %v", value, c.values)
}

func (c *Cycle[T]) Index() int {
	return c.index
}

func (c *Cycle[T]) Len() int {
	return len(c.values)
}

// MaxIndex is the largest register index; registers are single-digit.
const MaxIndex = 9

// Mnemonics lists the opcodes in encoding order.
var Mnemonics = []string{"let", "add", "dot", "sub", "mul", "muv"}

// IncrementValues are the step sizes available when editing an immediate,
// Casio style: pick a magnitude, press up to add it.
var IncrementValues = []float64{
	-10.000, -1.000, -0.100, -0.010, -0.001,
	0.001, 0.010, 0.100, 1.000, 10.000,
}

// SectionLabels are the program sections, in file order.
var SectionLabels = []string{"Setup", "Predict", "Learn"}

func NewOpcodeCycle() *Cycle[string] {
	return NewCycle(Mnemonics)
}

func NewIndexCycle() *Cycle[int] {
	indices := make([]int, MaxIndex+1)
	for i := range indices {
		indices[i] = i
	}
	return NewCycle(indices)
}

func NewIncrementCycle() *Cycle[float64] {
	return NewCycle(IncrementValues)
}
