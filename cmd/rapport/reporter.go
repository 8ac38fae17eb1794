package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rapportkit/rapport/internal/report"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlRenderer understands the GFM tables used in the markdown report.
var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderReport(rep *report.Report, format string) (string, error) {
	switch format {
	case "text", "":
		return FormatTextReport(rep), nil
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "markdown":
		return FormatMarkdownReport(rep), nil
	case "html":
		return FormatHTMLReport(rep)
	default:
		return "", fmt.Errorf("unknown format %q: must be text, json, markdown, or html", format)
	}
}

// FormatTextReport renders the report for terminal display.
func FormatTextReport(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("Survey summary:\n")
	for _, mr := range rep.Results {
		b.WriteString(fmt.Sprintf("\n%s [%s]\n", mr.Title, mr.Scores.Band))
		for _, sub := range mr.Scores.Subscales {
			b.WriteString(fmt.Sprintf("  %-22s %.2f (%s)\n", sub, mr.Scores.Scores[sub], mr.Scores.Bands[sub]))
		}
		for _, frag := range mr.Narratives {
			b.WriteString(fmt.Sprintf("  %s: %s\n", frag.Context, frag.Text))
		}
	}

	if len(rep.Dynamics) > 0 {
		b.WriteString("\nRelationship insights:\n")
		for _, frag := range rep.Dynamics {
			b.WriteString(fmt.Sprintf("  %s: %s\n", frag.Context, frag.Text))
		}
	}

	return b.String()
}

// FormatMarkdownReport renders the report as a markdown document.
func FormatMarkdownReport(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("# Survey Report\n\n")
	for _, mr := range rep.Results {
		b.WriteString(fmt.Sprintf("## %s\n\n", mr.Title))
		b.WriteString(fmt.Sprintf("**Overall band:** %s\n\n", mr.Scores.Band))
		b.WriteString("| Subscale | Score | Band |\n")
		b.WriteString("|----------|-------|------|\n")
		for _, sub := range mr.Scores.Subscales {
			b.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", sub, mr.Scores.Scores[sub], mr.Scores.Bands[sub]))
		}
		if len(mr.Narratives) > 0 {
			b.WriteString("\n")
			for _, frag := range mr.Narratives {
				b.WriteString(fmt.Sprintf("- **%s:** %s\n", frag.Context, frag.Text))
			}
		}
		b.WriteString("\n")
	}

	if len(rep.Dynamics) > 0 {
		b.WriteString("## Relationship insights\n\n")
		for _, frag := range rep.Dynamics {
			b.WriteString(fmt.Sprintf("- **%s:** %s\n", frag.Context, frag.Text))
		}
	}

	return b.String()
}

// FormatHTMLReport converts the markdown rendering to HTML.
func FormatHTMLReport(rep *report.Report) (string, error) {
	md := FormatMarkdownReport(rep)
	var b strings.Builder
	if err := htmlRenderer.Convert([]byte(md), &b); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	return b.String(), nil
}
