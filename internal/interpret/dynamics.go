package interpret

import (
	"fmt"

	"github.com/rapportkit/rapport/internal/scoring"
)

// Dynamics composes cross-model insights per context from the subscale bands
// of every scored model in the run. Rules are evaluated in authored order and
// the first rule whose conditions all hold wins; a rule referencing a model
// or subscale absent from the results cannot match. Contexts without any
// authored dynamics are skipped.
func (i *Interpreter) Dynamics(results []*scoring.ScoreResult, contexts []Context) ([]Fragment, error) {
	byModel := make(map[string]*scoring.ScoreResult, len(results))
	for _, r := range results {
		byModel[r.Model] = r
	}

	fragments := make([]Fragment, 0, len(contexts))
	for _, ctx := range contexts {
		if !knownContexts[ctx] {
			return nil, &scoring.ValidationError{
				Index:  -1,
				Detail: fmt.Sprintf("unknown context %q", ctx),
			}
		}
		spec, ok := i.lib.dynamicsFor(ctx)
		if !ok {
			continue
		}
		fragments = append(fragments, Fragment{Context: ctx, Text: spec.evaluate(byModel)})
	}
	return fragments, nil
}

func (l *library) dynamicsFor(ctx Context) (*dynamicsSpec, bool) {
	for i := range l.dynamics {
		if l.dynamics[i].context == ctx {
			return &l.dynamics[i], true
		}
	}
	return nil, false
}

func (s *dynamicsSpec) evaluate(byModel map[string]*scoring.ScoreResult) string {
	for _, rule := range s.rules {
		if rule.matches(byModel) {
			return rule.text
		}
	}
	return s.defaultText
}

func (r *dynamicsRule) matches(byModel map[string]*scoring.ScoreResult) bool {
	for _, cond := range r.conditions {
		result, ok := byModel[cond.model]
		if !ok {
			return false
		}
		actual, ok := result.Bands[cond.subscale]
		if !ok {
			return false
		}
		if !cond.matches(actual) {
			return false
		}
	}
	return true
}
