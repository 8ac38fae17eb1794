package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestInputFailureError(t *testing.T) {
	err := &InputFailureError{
		Message: "responses.json failed validation:\n  /attachment_trust/1: must be <= 5",
	}

	assert.Equal(t, "responses.json failed validation:\n  /attachment_trust/1: must be <= 5", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		inputFailure bool
	}{
		{
			name:         "InputFailureError",
			err:          &InputFailureError{Message: "bad file"},
			inputFailure: true,
		},
		{
			name:         "ValidationError",
			err:          &scoring.ValidationError{Model: "attachment_trust", Index: -1, Detail: "expected 8 responses, got 3"},
			inputFailure: true,
		},
		{
			name:         "NotFoundError",
			err:          &registry.NotFoundError{Model: "no_such_model"},
			inputFailure: true,
		},
		{
			name:         "wrapped ValidationError",
			err:          fmt.Errorf("running survey: %w", &scoring.ValidationError{Model: "m", Index: 0, Detail: "out of range"}),
			inputFailure: true,
		},
		{
			name:         "regular error",
			err:          errors.New("config error"),
			inputFailure: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inputErr *InputFailureError
			var validationErr *scoring.ValidationError
			var notFoundErr *registry.NotFoundError
			got := errors.As(tt.err, &inputErr) ||
				errors.As(tt.err, &validationErr) ||
				errors.As(tt.err, &notFoundErr)

			assert.Equal(t, tt.inputFailure, got)
		})
	}
}
