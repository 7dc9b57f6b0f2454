// Package goal is the behaviour-selection engine goal-driven brains
// delegate to. Think runs the most desirable evaluator each cycle.
package goal

// Evaluator scores one behaviour and performs it when chosen.
type Evaluator interface {
	Name() string
	Desirability() float64
	Act()
}

// Stack is the contract a goal-driven brain needs from the engine.
type Stack interface {
	Process()
	SetBias(bias map[string]float64)
	Evaluator(name string) (Evaluator, bool)
	AddEvaluator(e Evaluator)
	RemoveEvaluators()
}

// Think arbitrates between evaluators. Scores are multiplied by the bias for
// the evaluator's name, 1 when unset. Ties go to the evaluator added first.
type Think struct {
	evaluators []Evaluator
	bias       map[string]float64
	last       string
}

func NewThink(evaluators ...Evaluator) *Think {
	return &Think{evaluators: evaluators, bias: make(map[string]float64)}
}

// Process runs one decision cycle. Nothing happens when no evaluator scores
// above zero.
func (t *Think) Process() {
	var best Evaluator
	bestScore := 0.0
	for _, e := range t.evaluators {
		score := e.Desirability() * t.weight(e.Name())
		if score > bestScore {
			best, bestScore = e, score
		}
	}
	t.last = ""
	if best == nil {
		return
	}
	t.last = best.Name()
	best.Act()
}

func (t *Think) weight(name string) float64 {
	if b, ok := t.bias[name]; ok {
		return b
	}
	return 1
}

// SetBias merges bias into the current weights.
func (t *Think) SetBias(bias map[string]float64) {
	for k, v := range bias {
		t.bias[k] = v
	}
}

func (t *Think) Evaluator(name string) (Evaluator, bool) {
	for _, e := range t.evaluators {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

func (t *Think) AddEvaluator(e Evaluator) { t.evaluators = append(t.evaluators, e) }

func (t *Think) RemoveEvaluators() { t.evaluators = nil }

// Last names the evaluator the previous Process ran, or "".
func (t *Think) Last() string { return t.last }
