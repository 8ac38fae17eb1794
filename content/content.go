// Package content embeds the built-in survey instruments and narrative text.
// The YAML here is the single source of truth for item wording, scoring
// direction, subscale grouping, and band thresholds; code never hardcodes any
// of it.
package content

import _ "embed"

//go:embed models.yaml
var ModelsYAML []byte

//go:embed narratives.yaml
var NarrativesYAML []byte
