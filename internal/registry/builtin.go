package registry

import (
	"fmt"
	"sync"

	"github.com/rapportkit/rapport/content"
	"gopkg.in/yaml.v3"
)

var builtinOnce = sync.OnceValue(func() *Registry {
	r, err := Load(content.ModelsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded models.yaml is invalid: %v", err))
	}
	return r
})

// Builtin returns the registry of embedded survey models. The embedded
// content is parsed once per process; a malformed embed is a build defect and
// panics.
func Builtin() *Registry {
	return builtinOnce()
}

// Load parses model definitions from YAML and builds a validated registry.
func Load(data []byte) (*Registry, error) {
	var doc struct {
		Models []Model `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling models: %w", err)
	}
	if len(doc.Models) == 0 {
		return nil, fmt.Errorf("no models defined")
	}
	return New(doc.Models)
}
