// Package schemas embeds the JSON Schemas used to validate user-supplied
// files before they reach the survey engine.
package schemas

import _ "embed"

//go:embed responses.schema.json
var ResponsesSchemaJSON string
