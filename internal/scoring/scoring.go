// Package scoring converts raw Likert responses into subscale scores and
// banded levels. Everything here is a pure function over the immutable model
// definitions: identical inputs always produce bit-identical results.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rapportkit/rapport/internal/registry"
)

// Likert response bounds. A reverse-scored item maps raw value v to
// ScaleMin+ScaleMax-v, so 1 and 5 swap.
const (
	ScaleMin = 1
	ScaleMax = 5
)

// Band is the qualitative level derived from a numeric score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

var bandRank = map[Band]int{
	BandLow:    0,
	BandMedium: 1,
	BandHigh:   2,
}

func (b Band) String() string {
	return string(b)
}

// AtLeast returns true if b is at or above the target band.
func (b Band) AtLeast(target Band) bool {
	return bandRank[b] >= bandRank[target]
}

// ParseBand converts a string value to a Band.
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BandLow, nil
	case "medium":
		return BandMedium, nil
	case "high":
		return BandHigh, nil
	default:
		return BandLow, fmt.Errorf("invalid band %q: must be low, medium, or high", s)
	}
}

// ValidationError reports survey input that was rejected before scoring.
type ValidationError struct {
	Model  string
	Index  int // offending response index, or -1 when the error is not positional
	Detail string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Model != "" && e.Index >= 0:
		return fmt.Sprintf("model %q: response %d: %s", e.Model, e.Index, e.Detail)
	case e.Model != "":
		return fmt.Sprintf("model %q: %s", e.Model, e.Detail)
	default:
		return e.Detail
	}
}

// ScoreResult holds the complete scoring output for one model.
type ScoreResult struct {
	Model     string
	Subscales []string           // first-appearance order, for stable rendering
	Scores    map[string]float64 // subscale -> mean adjusted score, 2 decimals
	Bands     map[string]Band    // subscale -> band under the model thresholds
	Band      Band               // overall band from the mean of subscale scores
}

// Score validates responses against the model and computes subscale scores
// and the overall band. It returns *ValidationError on wrong length or
// out-of-range values, and never returns a partial result.
func Score(model *registry.Model, responses []int) (*ScoreResult, error) {
	if len(responses) != len(model.Items) {
		return nil, &ValidationError{
			Model:  model.ID,
			Index:  -1,
			Detail: fmt.Sprintf("expected %d responses, got %d", len(model.Items), len(responses)),
		}
	}
	for i, v := range responses {
		if v < ScaleMin || v > ScaleMax {
			return nil, &ValidationError{
				Model:  model.ID,
				Index:  i,
				Detail: fmt.Sprintf("value %d is outside [%d, %d]", v, ScaleMin, ScaleMax),
			}
		}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for i, item := range model.Items {
		v := float64(responses[i])
		if item.Reverse {
			v = ScaleMin + ScaleMax - v
		}
		label := item.Subscale
		if label == "" {
			// Unscaled models pool every item into a single overall scale.
			label = "overall"
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		sums[label] += v
		counts[label]++
	}

	result := &ScoreResult{
		Model:     model.ID,
		Subscales: order,
		Scores:    make(map[string]float64, len(order)),
		Bands:     make(map[string]Band, len(order)),
	}
	total := 0.0
	for _, label := range order {
		score := round2(sums[label] / float64(counts[label]))
		result.Scores[label] = score
		result.Bands[label] = BandFor(model.Thresholds, score)
		total += score
	}
	result.Band = BandFor(model.Thresholds, total/float64(len(order)))
	return result, nil
}

// BandFor maps a score onto band thresholds, inclusive-lower/exclusive-upper.
func BandFor(t registry.Thresholds, score float64) Band {
	switch {
	case score < t.Low:
		return BandLow
	case score < t.High:
		return BandMedium
	default:
		return BandHigh
	}
}

// round2 rounds half-to-even at 2 decimal digits.
func round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
