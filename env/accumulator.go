package env

// returnAccumulator tracks the cumulative reward of one episode. Zeroed
// at reset, bumped every step, read only at the terminal step.
type returnAccumulator struct {
	total float64
}

func (a *returnAccumulator) Reset() {
	a.total = 0
}

func (a *returnAccumulator) Add(reward float64) {
	a.total += reward
}

func (a *returnAccumulator) Value() float64 {
	return a.total
}
