// Package interpret maps scored survey results to narrative insight
// fragments for different relationship contexts.
package interpret

import (
	"fmt"
	"strings"

	"github.com/rapportkit/rapport/content"
	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/scoring"
)

// Context identifies the relationship a narrative fragment speaks to.
type Context string

const (
	ContextGeneral   Context = "general"
	ContextTechnical Context = "technical"
	ContextManager   Context = "manager"
	ContextPeer      Context = "peer"
	ContextMentor    Context = "mentor"
	ContextCommunity Context = "community"
)

var knownContexts = map[Context]bool{
	ContextGeneral:   true,
	ContextTechnical: true,
	ContextManager:   true,
	ContextPeer:      true,
	ContextMentor:    true,
	ContextCommunity: true,
}

// Contexts returns every supported context in display order.
func Contexts() []Context {
	return []Context{
		ContextGeneral, ContextTechnical, ContextManager,
		ContextPeer, ContextMentor, ContextCommunity,
	}
}

// ParseContext converts a string flag value to a Context.
func ParseContext(s string) (Context, error) {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if !knownContexts[c] {
		return "", fmt.Errorf("unknown context %q: must be one of %s", s, contextList())
	}
	return c, nil
}

func contextList() string {
	all := Contexts()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Fragment is one piece of narrative text for a requested context.
type Fragment struct {
	Context Context
	Text    string
}

// Interpreter selects narrative text for scored results. It is read-only
// after construction and safe for concurrent use.
type Interpreter struct {
	reg *registry.Registry
	lib *library
}

// New builds an interpreter over the embedded narrative content.
func New(reg *registry.Registry) (*Interpreter, error) {
	return NewFromConfig(reg, content.NarrativesYAML)
}

// NewFromConfig builds an interpreter from raw narrative YAML. Exposed for
// tests that exercise custom content.
func NewFromConfig(reg *registry.Registry, data []byte) (*Interpreter, error) {
	lib, err := parseLibrary(data)
	if err != nil {
		return nil, err
	}
	return &Interpreter{reg: reg, lib: lib}, nil
}

// Interpret returns one fragment per requested context, in request order.
// An unknown context fails with *scoring.ValidationError; a model/context
// pairing with no authored text resolves to the generic fallback instead.
func (i *Interpreter) Interpret(modelName string, result *scoring.ScoreResult, contexts []Context) ([]Fragment, error) {
	fragments := make([]Fragment, 0, len(contexts))
	for _, ctx := range contexts {
		if !knownContexts[ctx] {
			return nil, &scoring.ValidationError{
				Model:  modelName,
				Index:  -1,
				Detail: fmt.Sprintf("unknown context %q", ctx),
			}
		}
		text, ok := i.lib.entries[narrativeKey{model: modelName, context: ctx, band: result.Band}]
		if !ok {
			rendered, err := i.lib.renderFallback(i.modelTitle(modelName), result.Band)
			if err != nil {
				return nil, fmt.Errorf("rendering fallback for %q: %w", modelName, err)
			}
			text = rendered
		}
		fragments = append(fragments, Fragment{Context: ctx, Text: text})
	}
	return fragments, nil
}

func (i *Interpreter) modelTitle(name string) string {
	if m, err := i.reg.Get(name); err == nil && m.Title != "" {
		return m.Title
	}
	return name
}
