package brain

import (
	"fmt"

	"roguemind/internal/goal"
	"roguemind/internal/preset"
)

// GoalDriven hands the turn to a goal stack.
type GoalDriven struct {
	Stack goal.Stack
}

// Decide clears the visible-cells cache on both sides of Process so no
// evaluator sees last turn's view and the next caller sees this turn's.
func (p *GoalDriven) Decide(b *Brain, _ Input) (Decision, error) {
	b.ClearCache()
	p.Stack.Process()
	b.ClearCache()
	return Decision{Kind: Applied}, nil
}

// NewGoalDriven builds the evaluator stack named by cfg.
func NewGoalDriven(b *Brain, cfg preset.Brain) (*GoalDriven, error) {
	think := goal.NewThink()
	for _, name := range cfg.Evaluators {
		e, err := newEvaluator(b, name, cfg)
		if err != nil {
			return nil, err
		}
		think.AddEvaluator(e)
	}
	think.SetBias(cfg.Bias)
	return &GoalDriven{Stack: think}, nil
}

func newEvaluator(b *Brain, name string, cfg preset.Brain) (goal.Evaluator, error) {
	switch name {
	case "attack":
		return &attackEval{b: b}, nil
	case "explore":
		return &exploreEval{b: b}, nil
	case "flee":
		return &fleeEval{b: b}, nil
	case "castspell":
		prob := cfg.CastingProbability
		if prob <= 0 {
			prob = b.env.Tuning.CasterProbability
		}
		return &castSpellEval{b: b, probability: prob}, nil
	case "thief":
		return &thiefEval{b: b}, nil
	case "communicate":
		return &communicateEval{b: b}, nil
	case "orders":
		return &ordersEval{b: b}, nil
	case "command":
		return &commandEval{b: b}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownEvaluator)
}
