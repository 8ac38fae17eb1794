package interpret

import (
	"testing"

	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContent = `
fallback: "{{ .Title }} came out {{ .Band }}."
narratives:
  - model: test_model
    context: peer
    band: high
    text: Peers trust you.
  - model: test_model
    context: peer
    band: low
    text: Peers keep distance.
  - model: test_model
    context: manager
    band: high
    text: Managers rely on you.
`

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Model{{
		ID:         "test_model",
		Title:      "Test Model",
		Thresholds: registry.Thresholds{Low: 2.5, High: 3.75},
		Items:      []registry.Item{{Prompt: "q", Subscale: "s"}},
	}})
	require.NoError(t, err)
	return reg
}

func highResult(model string) *scoring.ScoreResult {
	return &scoring.ScoreResult{
		Model:     model,
		Subscales: []string{"s"},
		Scores:    map[string]float64{"s": 4.5},
		Bands:     map[string]scoring.Band{"s": scoring.BandHigh},
		Band:      scoring.BandHigh,
	}
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		input   string
		want    Context
		wantErr bool
	}{
		{"peer", ContextPeer, false},
		{" Manager ", ContextManager, false},
		{"COMMUNITY", ContextCommunity, false},
		{"boss", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseContext(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpret_RequestOrderPreserved(t *testing.T) {
	interp, err := NewFromConfig(testRegistry(t), []byte(testContent))
	require.NoError(t, err)

	fragments, err := interp.Interpret("test_model", highResult("test_model"),
		[]Context{ContextManager, ContextPeer, ContextGeneral})
	require.NoError(t, err)
	require.Len(t, fragments, 3)

	assert.Equal(t, ContextManager, fragments[0].Context)
	assert.Equal(t, "Managers rely on you.", fragments[0].Text)
	assert.Equal(t, ContextPeer, fragments[1].Context)
	assert.Equal(t, "Peers trust you.", fragments[1].Text)
	// No authored general text for this model: generic fallback.
	assert.Equal(t, ContextGeneral, fragments[2].Context)
	assert.Equal(t, "Test Model came out high.", fragments[2].Text)
}

func TestInterpret_UnknownContext(t *testing.T) {
	interp, err := NewFromConfig(testRegistry(t), []byte(testContent))
	require.NoError(t, err)

	_, err = interp.Interpret("test_model", highResult("test_model"), []Context{"boss"})
	require.Error(t, err)

	var ve *scoring.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "test_model", ve.Model)
	assert.Contains(t, err.Error(), `unknown context "boss"`)
}

func TestInterpret_UnknownModelFallsBack(t *testing.T) {
	interp, err := NewFromConfig(testRegistry(t), []byte(testContent))
	require.NoError(t, err)

	// A model the content has never heard of resolves to the fallback with
	// the raw name as title, never an error.
	fragments, err := interp.Interpret("future_model", highResult("future_model"), []Context{ContextPeer})
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "future_model came out high.", fragments[0].Text)
}

func TestInterpret_EmptyContexts(t *testing.T) {
	interp, err := NewFromConfig(testRegistry(t), []byte(testContent))
	require.NoError(t, err)

	fragments, err := interp.Interpret("test_model", highResult("test_model"), nil)
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestNewFromConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing fallback",
			content: "narratives: []",
			wantErr: "missing fallback",
		},
		{
			name: "bad band",
			content: `
fallback: f
narratives:
  - model: m
    context: peer
    band: extreme
    text: t
`,
			wantErr: "invalid band",
		},
		{
			name: "bad context",
			content: `
fallback: f
narratives:
  - model: m
    context: boss
    band: high
    text: t
`,
			wantErr: "unknown context",
		},
		{
			name: "duplicate entry",
			content: `
fallback: f
narratives:
  - model: m
    context: peer
    band: high
    text: one
  - model: m
    context: peer
    band: high
    text: two
`,
			wantErr: "duplicate entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromConfig(testRegistry(t), []byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_EmbeddedContentParses(t *testing.T) {
	interp, err := New(registry.Builtin())
	require.NoError(t, err)

	// Every built-in model must interpret cleanly for every context and
	// band, either through authored text or the fallback.
	for _, m := range registry.Builtin().List() {
		for _, band := range []scoring.Band{scoring.BandLow, scoring.BandMedium, scoring.BandHigh} {
			result := &scoring.ScoreResult{Model: m.ID, Band: band}
			fragments, err := interp.Interpret(m.ID, result, Contexts())
			require.NoError(t, err, "model %s band %s", m.ID, band)
			require.Len(t, fragments, len(Contexts()))
			for _, f := range fragments {
				assert.NotEmpty(t, f.Text)
			}
		}
	}
}
