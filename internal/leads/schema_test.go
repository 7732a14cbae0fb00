// internal/leads/schema_test.go
package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputAcceptsWellFormedLeads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"full record", goodLeadJSON},
		{"all fields null", `{
			"company_name": null,
			"annual_revenue": null,
			"location": null,
			"website_url": null,
			"review": null,
			"num_employees": null,
			"key_decision_makers": null,
			"score": null
		}`},
		{"partial record", `{"company_name": "Acme", "score": 5}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateOutput(tt.raw))
		})
	}
}

func TestValidateOutputRejectsMalformedLeads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the best lead is Acme"},
		{"json array", `[{"company_name": "Acme"}]`},
		{"score as string", `{"score": "9"}`},
		{"unknown field", `{"company": "Acme"}`},
		{"location as string", `{"location": "Curitiba, Brazil"}`},
		{"decision maker missing object shape", `{"key_decision_makers": ["Ana Souza"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutput(tt.raw)
			require.Error(t, err)
		})
	}
}
