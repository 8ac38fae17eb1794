package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponsesJSON_Valid(t *testing.T) {
	errs := ValidateResponsesJSON([]byte(`{"attachment_trust": [5, 4, 3, 2, 1, 3, 3, 3]}`))
	assert.Empty(t, errs)
}

func TestValidateResponsesJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an object", `[1, 2, 3]`},
		{"empty object", `{}`},
		{"value too low", `{"m": [0, 3]}`},
		{"value too high", `{"m": [3, 6]}`},
		{"non-integer", `{"m": [3.5]}`},
		{"string value", `{"m": ["strongly agree"]}`},
		{"empty array", `{"m": []}`},
		{"malformed JSON", `{"m": [3,`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateResponsesJSON([]byte(tt.data))
			require.NotEmpty(t, errs)
		})
	}
}

func TestValidateResponsesJSON_ReportsLocation(t *testing.T) {
	errs := ValidateResponsesJSON([]byte(`{"big_five_snapshot": [3, 3, 9]}`))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "/big_five_snapshot/2")
}

func TestValidateResponsesYAML(t *testing.T) {
	errs := ValidateResponsesYAML([]byte("attachment_trust: [5, 4, 3, 2, 1, 3, 3, 3]\n"))
	assert.Empty(t, errs)

	errs = ValidateResponsesYAML([]byte("attachment_trust: [5, 99]\n"))
	require.NotEmpty(t, errs)

	errs = ValidateResponsesYAML([]byte(": ["))
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "YAML parse error")
}
