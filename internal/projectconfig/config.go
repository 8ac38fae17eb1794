// Package projectconfig provides the ProjectConfig struct and loader for
// .rapport.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultFormat     = "text"
	DefaultResultsDir = "."
)

// DefaultContexts are the contexts interpreted when neither file nor flags
// name any.
var DefaultContexts = []string{"general", "technical", "manager", "peer", "mentor", "community"}

// RunConfig holds default parameters for the run command.
type RunConfig struct {
	Contexts   []string `yaml:"contexts,omitempty"`
	Format     string   `yaml:"format,omitempty"`
	ResultsDir string   `yaml:"results_dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .rapport.yaml.
type ProjectConfig struct {
	Run RunConfig `yaml:"run,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Run: RunConfig{
			Contexts:   append([]string(nil), DefaultContexts...),
			Format:     DefaultFormat,
			ResultsDir: DefaultResultsDir,
		},
	}
}

// Load finds .rapport.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .rapport.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .rapport.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .rapport.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".rapport.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

func mergeConfig(dst, src *ProjectConfig) {
	if len(src.Run.Contexts) > 0 {
		dst.Run.Contexts = src.Run.Contexts
	}
	if src.Run.Format != "" {
		dst.Run.Format = src.Run.Format
	}
	if src.Run.ResultsDir != "" {
		dst.Run.ResultsDir = src.Run.ResultsDir
	}
}
