// Package report defines the terminal output object of a survey run.
package report

import (
	"bytes"
	"encoding/json"

	"github.com/rapportkit/rapport/internal/interpret"
	"github.com/rapportkit/rapport/internal/scoring"
)

// ModelResult pairs one model's scores with its narrative fragments.
type ModelResult struct {
	Model      string
	Title      string
	Scores     *scoring.ScoreResult
	Narratives []interpret.Fragment
}

// Report is the assembled output of a survey run. It is built once by the
// runner and never mutated afterwards. Results keep the insertion order of
// the submitted responses.
type Report struct {
	Results  []ModelResult
	Dynamics []interpret.Fragment
}

// Result returns the entry for the named model, or nil.
func (r *Report) Result(model string) *ModelResult {
	for i := range r.Results {
		if r.Results[i].Model == model {
			return &r.Results[i]
		}
	}
	return nil
}

// MarshalJSON emits the nested mapping
//
//	{"models": {name: {"scores": {...}, "band": "...", "narratives": {ctx: text}}}, "dynamics": {ctx: text}}
//
// preserving model insertion order and subscale definition order, which
// encoding/json's map marshalling would destroy.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"models":{`)
	for i := range r.Results {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeModelResult(&buf, &r.Results[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	if len(r.Dynamics) > 0 {
		buf.WriteString(`,"dynamics":`)
		if err := writeFragments(&buf, r.Dynamics); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeModelResult(buf *bytes.Buffer, mr *ModelResult) error {
	if err := writeString(buf, mr.Model); err != nil {
		return err
	}
	buf.WriteString(`:{"scores":{`)
	for i, sub := range mr.Scores.Subscales {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, sub); err != nil {
			return err
		}
		buf.WriteByte(':')
		num, err := json.Marshal(mr.Scores.Scores[sub])
		if err != nil {
			return err
		}
		buf.Write(num)
	}
	buf.WriteString(`},"band":`)
	if err := writeString(buf, string(mr.Scores.Band)); err != nil {
		return err
	}
	buf.WriteString(`,"narratives":`)
	if err := writeFragments(buf, mr.Narratives); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeFragments(buf *bytes.Buffer, fragments []interpret.Fragment) error {
	buf.WriteByte('{')
	for i, f := range fragments {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, string(f.Context)); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeString(buf, f.Text); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
