package game

import (
	"math"

	"golang.org/x/exp/rand"
)

const (
	numScalars = MaxIndex + 1
	numVectors = MaxIndex + 1

	// FeatureDim is the width of the vector registers and of the synthetic
	// task features in v0.
	FeatureDim = 4

	trainExamples = 50
	validExamples = 20
)

// Interpreter executes a program over the scalar and vector register
// files. Register conventions: v0 features, s0 label, s1 prediction.
type Interpreter struct {
	Scalars [numScalars]float64
	Vectors [numVectors][FeatureDim]float64
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (in *Interpreter) exec(st *Statement) {
	dst := st.Dst.Current()
	switch st.Op {
	case ScalarAssign:
		in.Scalars[dst] = RoundtripFloat8(st.Imm)
	case DotProduct:
		var sum float64
		a := in.Vectors[st.Src1.Current()]
		b := in.Vectors[st.Src2.Current()]
		for i := 0; i < FeatureDim; i++ {
			sum += a[i] * b[i]
		}
		in.Scalars[dst] = sum
	case Subtraction:
		in.Scalars[dst] = in.Scalars[st.Src1.Current()] - in.Scalars[st.Src2.Current()]
	case Multiplication:
		in.Scalars[dst] = in.Scalars[st.Src1.Current()] * in.Scalars[st.Src2.Current()]
	case VectorScalarMult:
		s := in.Scalars[st.Src2.Current()]
		v := in.Vectors[st.Src1.Current()]
		for i := 0; i < FeatureDim; i++ {
			v[i] *= s
		}
		in.Vectors[dst] = v
	case VectorAdd:
		a := in.Vectors[st.Src1.Current()]
		b := in.Vectors[st.Src2.Current()]
		for i := 0; i < FeatureDim; i++ {
			a[i] += b[i]
		}
		in.Vectors[dst] = a
	case SectionLabel:
		// labels are no-ops
	}
}

// RunSection executes every statement in the named section once.
func (in *Interpreter) RunSection(p Program, label string) {
	for _, st := range p.Section(label) {
		in.exec(st)
	}
}

// Task is a synthetic regression problem: labels are a fixed linear
// function of the features.
type Task struct {
	weights [FeatureDim]float64
	trainX  [][FeatureDim]float64
	trainY  []float64
	validX  [][FeatureDim]float64
	validY  []float64
}

// NewTask samples a linear task from rng.
func NewTask(rng *rand.Rand) *Task {
	t := &Task{}
	for i := range t.weights {
		t.weights[i] = rng.Float64()*2 - 1
	}
	t.trainX, t.trainY = t.sample(rng, trainExamples)
	t.validX, t.validY = t.sample(rng, validExamples)
	return t
}

func (t *Task) sample(rng *rand.Rand, n int) ([][FeatureDim]float64, []float64) {
	xs := make([][FeatureDim]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		var dot float64
		for j := range xs[i] {
			xs[i][j] = rng.Float64()*2 - 1
			dot += xs[i][j] * t.weights[j]
		}
		ys[i] = dot
	}
	return xs, ys
}

// Evaluate runs Setup once, one Predict/Learn pass over the training
// examples, then scores Predict on the validation examples. The score is
// 1 - RMSE clamped into [0, 1], so a perfect learner scores 1 and
// anything at or beyond unit error scores 0.
func (t *Task) Evaluate(p Program) float64 {
	in := NewInterpreter()
	in.RunSection(p, "Setup")

	for i, x := range t.trainX {
		in.Vectors[0] = x
		in.Scalars[0] = t.trainY[i]
		in.RunSection(p, "Predict")
		in.RunSection(p, "Learn")
	}

	var sumSq float64
	for i, x := range t.validX {
		in.Vectors[0] = x
		in.Scalars[0] = t.validY[i]
		in.RunSection(p, "Predict")
		err := in.Scalars[1] - t.validY[i]
		sumSq += err * err
	}
	rmse := math.Sqrt(sumSq / float64(len(t.validX)))
	if math.IsNaN(rmse) || math.IsInf(rmse, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, 1-rmse))
}
