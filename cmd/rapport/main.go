package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rapportkit/rapport/internal/registry"
	"github.com/rapportkit/rapport/internal/scoring"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Survey ran and the report was produced
	ExitInputFailure = 1 // User-supplied responses failed validation
	ExitError        = 2 // Configuration or runtime error
)

// InputFailureError indicates user-supplied input rejected before the survey
// engine ran, e.g. a responses file that failed schema validation.
type InputFailureError struct {
	Message string
}

func (e *InputFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var inputErr *InputFailureError
		var validationErr *scoring.ValidationError
		var notFoundErr *registry.NotFoundError
		if errors.As(err, &inputErr) || errors.As(err, &validationErr) || errors.As(err, &notFoundErr) {
			os.Exit(ExitInputFailure)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
