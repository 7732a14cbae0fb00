// internal/leads/schema.go
package leads

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// leadResultSchema mirrors the LeadResult struct field-for-field. The
// engine output is validated against it before unmarshalling so that a
// malformed pipeline result degrades cleanly instead of producing a
// half-coerced lead.
const leadResultSchema = `{
  "type": "object",
  "properties": {
    "company_name": {"type": ["string", "null"]},
    "annual_revenue": {"type": ["string", "null"]},
    "location": {
      "type": ["object", "null"],
      "properties": {
        "city": {"type": ["string", "null"]},
        "country": {"type": ["string", "null"]}
      },
      "additionalProperties": false
    },
    "website_url": {"type": ["string", "null"]},
    "review": {"type": ["string", "null"]},
    "num_employees": {"type": ["integer", "null"]},
    "key_decision_makers": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": ["string", "null"]},
          "position": {"type": ["string", "null"]},
          "linkedin": {"type": ["string", "null"]}
        },
        "additionalProperties": false
      }
    },
    "score": {"type": ["integer", "null"]}
  },
  "additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(leadResultSchema)

// ValidateOutput checks a raw engine payload against the lead schema.
func ValidateOutput(raw string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("engine output failed schema validation: %s", strings.Join(msgs, "; "))
	}

	return nil
}
