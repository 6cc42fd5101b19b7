package payload

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// sanitySchema requires only that a payload be a JSON object carrying
// an "id" or a "sha" field (their value types are not checked) — the bare
// minimum every GitHub
// entity this crawler handles provides, and enough to catch a body that is
// clearly not what its Request.Type claims (an HTML error page, an empty
// object from a 204, a paginated array where a singleton was expected).
const sanitySchema = `{
	"type": "object",
	"anyOf": [
		{"required": ["id"]},
		{"required": ["sha"]}
	]
}`

var schemaLoader = gojsonschema.NewStringLoader(sanitySchema)

// Validate reports whether body passes the minimal sanity schema. It is not
// a substitute for a handler's own malformed-payload check (spec.md §4.7
// "Terminal states") — it exists to catch the fetch layer handing a
// completely wrong shape to the processor before any handler runs.
func Validate(body map[string]any) error {
	documentLoader := gojsonschema.NewGoLoader(body)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("payload: validating: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("payload: %d schema violation(s), e.g. %s", len(result.Errors()), firstError(result.Errors()))
	}
	return nil
}

func firstError(errs []gojsonschema.ResultError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].String()
}
