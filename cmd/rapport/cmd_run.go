package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rapportkit/rapport/internal/interpret"
	"github.com/rapportkit/rapport/internal/projectconfig"
	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/report"
	"github.com/rapportkit/rapport/internal/survey"
	"github.com/rapportkit/rapport/internal/validation"
	"github.com/rapportkit/rapport/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunCommand() *cobra.Command {
	var (
		responsesFile string
		contextFlags  []string
		modelFilters  []string
		outputPath    string
		format        string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the survey and produce a report",
		Long: `Run the survey interactively or from a pre-filled responses file.

A responses file is a JSON or YAML mapping from model name to an array of
Likert values (1-5), one per item in model order:

  {"attachment_trust": [5, 4, 3, 4, 5, 4, 3, 4]}

Without --responses-file, an interactive questionnaire walks through every
model (narrow the set with --model). The report is printed in the chosen
format; --output additionally stores it as JSON, gzip-compressed when the
path ends in .gz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurvey(cmd, responsesFile, contextFlags, modelFilters, outputPath, format)
		},
	}

	cmd.Flags().StringVarP(&responsesFile, "responses-file", "f", "", "JSON or YAML file with pre-filled Likert responses")
	cmd.Flags().StringArrayVar(&contextFlags, "context", nil, "Relationship context to interpret (can be repeated; default: all)")
	cmd.Flags().StringArrayVar(&modelFilters, "model", nil, "Survey model to include in an interactive run (can be repeated; default: all)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report as JSON to this path (.gz for gzip)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: text | json | markdown | html")

	return cmd
}

func runSurvey(cmd *cobra.Command, responsesFile string, contextFlags, modelFilters []string, outputPath, format string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Run.Format
	}
	if len(contextFlags) == 0 {
		contextFlags = cfg.Run.Contexts
	}

	contexts := make([]interpret.Context, 0, len(contextFlags))
	for _, c := range contextFlags {
		ctx, err := interpret.ParseContext(c)
		if err != nil {
			return &InputFailureError{Message: err.Error()}
		}
		contexts = append(contexts, ctx)
	}

	reg := registry.Builtin()
	var responses survey.ResponseSet
	if responsesFile != "" {
		responses, err = loadResponses(responsesFile)
		if err != nil {
			return err
		}
	} else {
		models, err := wizardModels(reg, modelFilters)
		if err != nil {
			return err
		}
		responses, err = wizard.RunSurveyWizard(cmd.InOrStdin(), cmd.OutOrStdout(), models)
		if err != nil {
			return err
		}
	}
	slog.Debug("responses collected", "models", len(responses), "contexts", len(contexts))

	runner, err := survey.NewRunner(reg)
	if err != nil {
		return err
	}
	rep, err := runner.Run(responses, contexts)
	if err != nil {
		return err
	}

	rendered, err := renderReport(rep, format)
	if err != nil {
		return err
	}
	cmd.Print(rendered)

	if outputPath != "" {
		if dir := cfg.Run.ResultsDir; dir != "" && dir != "." && !filepath.IsAbs(outputPath) {
			outputPath = filepath.Join(dir, outputPath)
		}
		if err := writeReportJSON(rep, outputPath); err != nil {
			return err
		}
		cmd.Printf("\nSaved results to %s\n", outputPath)
	}
	return nil
}

// loadResponses reads, schema-validates, and decodes a responses file.
// Schema violations surface as one InputFailureError listing every location,
// so the user can fix the whole file in one pass.
func loadResponses(path string) (survey.ResponseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading responses file: %w", err)
	}

	var responses survey.ResponseSet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if errs := validation.ValidateResponsesYAML(data); len(errs) > 0 {
			return nil, schemaFailure(path, errs)
		}
		if err := yaml.Unmarshal(data, &responses); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		if errs := validation.ValidateResponsesJSON(data); len(errs) > 0 {
			return nil, schemaFailure(path, errs)
		}
		if err := json.Unmarshal(data, &responses); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return responses, nil
}

func schemaFailure(path string, errs []string) error {
	return &InputFailureError{
		Message: fmt.Sprintf("%s failed validation:\n  %s", path, strings.Join(errs, "\n  ")),
	}
}

// wizardModels resolves the interactive model set, preserving registry order
// even when filters are given in a different order.
func wizardModels(reg *registry.Registry, filters []string) ([]registry.Model, error) {
	all := reg.List()
	if len(filters) == 0 {
		return all, nil
	}
	wanted := make(map[string]bool, len(filters))
	for _, f := range filters {
		if _, err := reg.Get(f); err != nil {
			return nil, err
		}
		wanted[f] = true
	}
	var out []registry.Model
	for _, m := range all {
		if wanted[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func writeReportJSON(rep *report.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return f.Close()
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
