package survey

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ModelResponses is one model's raw Likert responses.
type ModelResponses struct {
	Model  string
	Values []int
}

// ResponseSet is an ordered mapping from model name to responses. Order
// matters: the report iterates models in submission order, and Go maps would
// drop the order a JSON or YAML document was written in.
type ResponseSet []ModelResponses

// Add appends a model's responses, keeping submission order.
func (rs *ResponseSet) Add(model string, values []int) {
	*rs = append(*rs, ModelResponses{Model: model, Values: values})
}

// UnmarshalJSON decodes {"model": [1,2,...], ...} preserving key order by
// walking the token stream instead of decoding into a map.
func (rs *ResponseSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("responses must be a JSON object, got %v", tok)
	}

	var out ResponseSet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		var values []int
		if err := dec.Decode(&values); err != nil {
			return fmt.Errorf("model %q: %w", key, err)
		}
		out.Add(key, values)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = out
	return nil
}

// MarshalJSON emits the object form in stored order.
func (rs ResponseSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mr := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(mr.Model)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		vals, err := json.Marshal(mr.Values)
		if err != nil {
			return nil, err
		}
		buf.Write(vals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the same object shape from YAML, preserving document
// order via the node API.
func (rs *ResponseSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("responses must be a mapping, got %s node", nodeKind(node.Kind))
	}
	var out ResponseSet
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var values []int
		if err := valNode.Decode(&values); err != nil {
			return fmt.Errorf("model %q: %w", keyNode.Value, err)
		}
		out.Add(keyNode.Value, values)
	}
	*rs = out
	return nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
