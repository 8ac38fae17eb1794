// Package survey runs the full survey pipeline: resolve each model through
// the registry, score its responses, interpret the scores, and assemble the
// final report.
package survey

import (
	"github.com/rapportkit/rapport/internal/interpret"
	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/report"
	"github.com/rapportkit/rapport/internal/scoring"
)

// Runner wires a registry to an interpreter. It holds no per-run state and
// is safe to call from concurrent goroutines.
type Runner struct {
	registry    *registry.Registry
	interpreter *interpret.Interpreter
}

// NewRunner builds a runner over the given registry with the embedded
// narrative content.
func NewRunner(reg *registry.Registry) (*Runner, error) {
	interp, err := interpret.New(reg)
	if err != nil {
		return nil, err
	}
	return &Runner{registry: reg, interpreter: interp}, nil
}

// Run scores every submitted model and interprets the results for the
// requested contexts. The run is all-or-nothing: the first invalid entry
// aborts with its error and no partial report is returned. Cross-model
// dynamics are included when two or more models were submitted.
func (r *Runner) Run(responses ResponseSet, contexts []interpret.Context) (*report.Report, error) {
	if len(responses) == 0 {
		return nil, &scoring.ValidationError{Index: -1, Detail: "no responses submitted"}
	}
	seen := make(map[string]bool, len(responses))

	rep := &report.Report{Results: make([]report.ModelResult, 0, len(responses))}
	scored := make([]*scoring.ScoreResult, 0, len(responses))

	for _, entry := range responses {
		if seen[entry.Model] {
			return nil, &scoring.ValidationError{
				Model:  entry.Model,
				Index:  -1,
				Detail: "duplicate responses for model",
			}
		}
		seen[entry.Model] = true

		model, err := r.registry.Get(entry.Model)
		if err != nil {
			return nil, err
		}
		result, err := scoring.Score(model, entry.Values)
		if err != nil {
			return nil, err
		}
		fragments, err := r.interpreter.Interpret(model.ID, result, contexts)
		if err != nil {
			return nil, err
		}

		scored = append(scored, result)
		rep.Results = append(rep.Results, report.ModelResult{
			Model:      model.ID,
			Title:      model.Title,
			Scores:     result,
			Narratives: fragments,
		})
	}

	if len(scored) >= 2 {
		dynamics, err := r.interpreter.Dynamics(scored, contexts)
		if err != nil {
			return nil, err
		}
		rep.Dynamics = dynamics
	}

	return rep, nil
}
