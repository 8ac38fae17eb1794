package interpret

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rapportkit/rapport/internal/scoring"
	"gopkg.in/yaml.v3"
)

// narrativeKey addresses one authored narrative. Lookups are exact; unknown
// combinations route to the fallback template instead of failing.
type narrativeKey struct {
	model   string
	context Context
	band    scoring.Band
}

type library struct {
	fallback *template.Template
	entries  map[narrativeKey]string
	dynamics []dynamicsSpec
}

type dynamicsSpec struct {
	context      Context
	rules        []dynamicsRule
	defaultText  string
}

type dynamicsRule struct {
	conditions []bandCondition
	text       string
}

// bandCondition requires a model's subscale to reach a band. BandLow is an
// exact match so "low" rules only fire on genuinely low scores.
type bandCondition struct {
	model    string
	subscale string
	band     scoring.Band
}

func (c bandCondition) matches(actual scoring.Band) bool {
	if c.band == scoring.BandLow {
		return actual == scoring.BandLow
	}
	return actual.AtLeast(c.band)
}

// Raw document shape. The YAML is decoded generically first and then mapped
// into typed structs, so authoring mistakes surface as named field errors.
type libraryDoc struct {
	Fallback   string          `mapstructure:"fallback"`
	Narratives []narrativeDoc  `mapstructure:"narratives"`
	Dynamics   []dynamicsDoc   `mapstructure:"dynamics"`
}

type narrativeDoc struct {
	Model   string `mapstructure:"model"`
	Context string `mapstructure:"context"`
	Band    string `mapstructure:"band"`
	Text    string `mapstructure:"text"`
}

type dynamicsDoc struct {
	Context string            `mapstructure:"context"`
	Rules   []dynamicsRuleDoc `mapstructure:"rules"`
	Default string            `mapstructure:"default"`
}

type dynamicsRuleDoc struct {
	When map[string]string `mapstructure:"when"`
	Text string            `mapstructure:"text"`
}

func parseLibrary(data []byte) (*library, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling narratives: %w", err)
	}
	var doc libraryDoc
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding narratives: %w", err)
	}

	if strings.TrimSpace(doc.Fallback) == "" {
		return nil, fmt.Errorf("narratives: missing fallback template")
	}
	fallback, err := template.New("fallback").Parse(doc.Fallback)
	if err != nil {
		return nil, fmt.Errorf("narratives: parsing fallback template: %w", err)
	}

	lib := &library{
		fallback: fallback,
		entries:  make(map[narrativeKey]string, len(doc.Narratives)),
	}

	for i, n := range doc.Narratives {
		band, err := scoring.ParseBand(n.Band)
		if err != nil {
			return nil, fmt.Errorf("narratives[%d]: %w", i, err)
		}
		ctx, err := ParseContext(n.Context)
		if err != nil {
			return nil, fmt.Errorf("narratives[%d]: %w", i, err)
		}
		if strings.TrimSpace(n.Text) == "" {
			return nil, fmt.Errorf("narratives[%d]: empty text", i)
		}
		key := narrativeKey{model: n.Model, context: ctx, band: band}
		if _, dup := lib.entries[key]; dup {
			return nil, fmt.Errorf("narratives[%d]: duplicate entry for %s/%s/%s", i, n.Model, ctx, band)
		}
		lib.entries[key] = strings.TrimSpace(n.Text)
	}

	for i, d := range doc.Dynamics {
		ctx, err := ParseContext(d.Context)
		if err != nil {
			return nil, fmt.Errorf("dynamics[%d]: %w", i, err)
		}
		spec := dynamicsSpec{context: ctx, defaultText: strings.TrimSpace(d.Default)}
		if spec.defaultText == "" {
			return nil, fmt.Errorf("dynamics[%d]: missing default text", i)
		}
		for j, r := range d.Rules {
			rule := dynamicsRule{text: strings.TrimSpace(r.Text)}
			if rule.text == "" {
				return nil, fmt.Errorf("dynamics[%d].rules[%d]: empty text", i, j)
			}
			for key, want := range r.When {
				model, subscale, ok := strings.Cut(key, ".")
				if !ok || model == "" || subscale == "" {
					return nil, fmt.Errorf("dynamics[%d].rules[%d]: condition key %q must be model.subscale", i, j, key)
				}
				band, err := scoring.ParseBand(want)
				if err != nil {
					return nil, fmt.Errorf("dynamics[%d].rules[%d]: %w", i, j, err)
				}
				rule.conditions = append(rule.conditions, bandCondition{
					model:    model,
					subscale: subscale,
					band:     band,
				})
			}
			if len(rule.conditions) == 0 {
				return nil, fmt.Errorf("dynamics[%d].rules[%d]: no conditions", i, j)
			}
			spec.rules = append(spec.rules, rule)
		}
		lib.dynamics = append(lib.dynamics, spec)
	}

	return lib, nil
}

func (l *library) renderFallback(title string, band scoring.Band) (string, error) {
	var b strings.Builder
	err := l.fallback.Execute(&b, struct {
		Title string
		Band  scoring.Band
	}{Title: title, Band: band})
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}
