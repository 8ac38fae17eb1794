// Package wizard collects Likert responses interactively with huh forms.
package wizard

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/scoring"
	"github.com/rapportkit/rapport/internal/survey"
	"golang.org/x/term"
)

// likertOptions label the 1–5 scale once; every question reuses them.
var likertOptions = []huh.Option[int]{
	huh.NewOption("1 — strongly disagree", 1),
	huh.NewOption("2 — disagree", 2),
	huh.NewOption("3 — neutral", 3),
	huh.NewOption("4 — agree", 4),
	huh.NewOption("5 — strongly agree", 5),
}

// newSurveyForm builds one form group per model, with a select per item. The
// returned value slices are bound to the form fields and filled in when the
// form runs.
func newSurveyForm(models []registry.Model) (*huh.Form, [][]int) {
	values := make([][]int, len(models))
	groups := make([]*huh.Group, 0, len(models))

	for mi := range models {
		model := &models[mi]
		values[mi] = make([]int, len(model.Items))
		fields := make([]huh.Field, 0, len(model.Items)+1)
		fields = append(fields, huh.NewNote().
			Title(model.Title).
			Description(model.Description))
		for qi := range model.Items {
			item := &model.Items[qi]
			// Default to the scale midpoint so arrowing in either
			// direction costs the same.
			values[mi][qi] = (scoring.ScaleMin + scoring.ScaleMax) / 2
			fields = append(fields, huh.NewSelect[int]().
				Title(fmt.Sprintf("Q%d: %s", qi+1, item.Prompt)).
				Options(likertOptions...).
				Value(&values[mi][qi]))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}

	return huh.NewForm(groups...), values
}

// RunSurveyWizard walks the user through every item of every model, one form
// group per model, and returns the responses in model order. Values arrive
// already constrained to [1,5] by the select options, so the scorer's range
// check cannot fire on wizard input.
func RunSurveyWizard(in io.Reader, out io.Writer, models []registry.Model) (survey.ResponseSet, error) {
	form, values := newSurveyForm(models)
	form = form.
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("survey wizard failed: %w", err)
	}

	var responses survey.ResponseSet
	for mi := range models {
		responses.Add(models[mi].ID, values[mi])
	}
	return responses, nil
}
