package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rapportkit/rapport/internal/registry"
	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	var (
		format        string
		withQuestions bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the available survey models",
		Long: `List the available survey models with their item counts and subscales.

With --questions, every item is printed in order with a note on reverse-scored
items. Responses submitted with 'rapport run' must follow this item order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := registry.Builtin().List()
			if format == "json" {
				return printModelsJSON(cmd, models)
			}
			printModelsTable(cmd, models, withQuestions)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text | json")
	cmd.Flags().BoolVar(&withQuestions, "questions", false, "Print every question for each model")

	return cmd
}

// modelJSON is the JSON projection of a model summary.
type modelJSON struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ItemCount   int            `json:"item_count"`
	Subscales   []string       `json:"subscales"`
	Questions   []questionJSON `json:"questions"`
}

type questionJSON struct {
	Prompt   string `json:"prompt"`
	Subscale string `json:"subscale"`
	Reverse  bool   `json:"reverse,omitempty"`
}

func printModelsJSON(cmd *cobra.Command, models []registry.Model) error {
	out := make([]modelJSON, 0, len(models))
	for _, m := range models {
		mj := modelJSON{
			Name:        m.ID,
			Title:       m.Title,
			Description: m.Description,
			ItemCount:   len(m.Items),
			Subscales:   m.Subscales(),
			Questions:   make([]questionJSON, 0, len(m.Items)),
		}
		for _, it := range m.Items {
			mj.Questions = append(mj.Questions, questionJSON{
				Prompt:   it.Prompt,
				Subscale: it.Subscale,
				Reverse:  it.Reverse,
			})
		}
		out = append(out, mj)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func printModelsTable(cmd *cobra.Command, models []registry.Model, withQuestions bool) {
	headers := []string{"NAME", "ITEMS", "SUBSCALES"}
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{
			m.ID,
			fmt.Sprintf("%d", len(m.Items)),
			strings.Join(m.Subscales(), ", "),
		})
	}
	printTable(cmd.OutOrStdout(), headers, rows)

	if !withQuestions {
		return
	}
	for _, m := range models {
		cmd.Printf("\n=== %s ===\n", m.Title)
		cmd.Println(m.Description)
		for i, it := range m.Items {
			note := ""
			if it.Reverse {
				note = " (reverse scored)"
			}
			cmd.Printf("  %d. %s%s\n", i+1, it.Prompt, note)
		}
	}
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if gap := widths[i] - runewidth.StringWidth(cell); gap > 0 && i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", gap))
			}
		}
		b.WriteByte('\n')
		fmt.Fprint(w, b.String())
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}
