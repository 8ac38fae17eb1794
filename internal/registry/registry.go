// Package registry holds the static survey model definitions.
package registry

import (
	"fmt"
)

// NotFoundError indicates a model name that matches no registered model.
type NotFoundError struct {
	Model string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown model %q", e.Model)
}

// Item is a single Likert-scale question within a model. Position within
// Model.Items is significant: response arrays are matched by index.
type Item struct {
	Prompt   string `yaml:"prompt"`
	Subscale string `yaml:"subscale"`
	Reverse  bool   `yaml:"reverse,omitempty"`
}

// Thresholds are the band boundaries for a model, applied
// inclusive-lower/exclusive-upper: a mean below Low bands "low", below High
// bands "medium", anything else "high".
type Thresholds struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Model describes one survey instrument: its items, their scoring direction
// and subscale grouping, and the banding thresholds.
type Model struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Thresholds  Thresholds `yaml:"thresholds"`
	Items       []Item     `yaml:"items"`
}

// Subscales returns the distinct subscale labels in first-appearance order.
func (m *Model) Subscales() []string {
	seen := make(map[string]bool, len(m.Items))
	var out []string
	for _, it := range m.Items {
		if seen[it.Subscale] {
			continue
		}
		seen[it.Subscale] = true
		out = append(out, it.Subscale)
	}
	return out
}

// Registry resolves model names to immutable model definitions. It is
// read-only after construction and safe for concurrent use.
type Registry struct {
	models []Model
	byID   map[string]*Model
}

// New builds a registry from model definitions, validating each one.
func New(models []Model) (*Registry, error) {
	r := &Registry{
		models: models,
		byID:   make(map[string]*Model, len(models)),
	}
	for i := range models {
		m := &models[i]
		if err := validateModel(m); err != nil {
			return nil, fmt.Errorf("model %q: %w", m.ID, err)
		}
		if _, ok := r.byID[m.ID]; ok {
			return nil, fmt.Errorf("duplicate model id %q", m.ID)
		}
		r.byID[m.ID] = m
	}
	return r, nil
}

// List returns summaries of all registered models in definition order.
func (r *Registry) List() []Model {
	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}

// Get returns the model with the given ID, or a *NotFoundError.
func (r *Registry) Get(name string) (*Model, error) {
	m, ok := r.byID[name]
	if !ok {
		return nil, &NotFoundError{Model: name}
	}
	return m, nil
}

func validateModel(m *Model) error {
	if m.ID == "" {
		return fmt.Errorf("missing id")
	}
	if len(m.Items) == 0 {
		return fmt.Errorf("no items defined")
	}
	for i, it := range m.Items {
		if it.Prompt == "" {
			return fmt.Errorf("item %d: empty prompt", i)
		}
	}
	if m.Thresholds.Low <= 0 || m.Thresholds.High <= m.Thresholds.Low {
		return fmt.Errorf("thresholds must satisfy 0 < low < high, got low=%v high=%v",
			m.Thresholds.Low, m.Thresholds.High)
	}
	return nil
}
