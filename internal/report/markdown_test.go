// internal/report/markdown_test.go
package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"lead-generator/internal/leads"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func fullLead() *leads.LeadResult {
	return &leads.LeadResult{
		CompanyName:   strPtr("Acme Robotics"),
		AnnualRevenue: strPtr("$12M"),
		Location:      &leads.Location{City: strPtr("Curitiba"), Country: strPtr("Brazil")},
		WebsiteURL:    strPtr("https://acme-robotics.example.com"),
		Review:        strPtr("Industrial automation vendor."),
		NumEmployees:  intPtr(85),
		KeyDecisionMakers: []leads.DecisionMaker{
			{Name: strPtr("Ana Souza"), Position: strPtr("CTO"), LinkedIn: strPtr("https://linkedin.com/in/anasouza")},
		},
		Score: intPtr(9),
	}
}

func TestMarkdownFullLead(t *testing.T) {
	out := Markdown("industrial automation", []*leads.LeadResult{fullLead()})

	assert.True(t, strings.HasPrefix(out, "# Lead Generation Report"))
	assert.Contains(t, out, "**Topic:** industrial automation")
	assert.Contains(t, out, "## 1. Acme Robotics")
	assert.Contains(t, out, "- **Score:** 9")
	assert.Contains(t, out, "- **Location:** Curitiba, Brazil")
	assert.Contains(t, out, "### Key Decision Makers")
	assert.Contains(t, out, "Ana Souza - CTO")
	assert.Contains(t, out, "[LinkedIn](https://linkedin.com/in/anasouza)")
	assert.Contains(t, out, "## Raw JSON")
	assert.Contains(t, out, `"company_name": "Acme Robotics"`)
}

func TestMarkdownMissingFieldsRenderAsNA(t *testing.T) {
	lead := &leads.LeadResult{CompanyName: strPtr("Mystery Corp")}

	out := Markdown("anything", []*leads.LeadResult{lead})

	assert.Contains(t, out, "## 1. Mystery Corp")
	assert.Contains(t, out, "- **Score:** N/A")
	assert.Contains(t, out, "- **Location:** N/A")
	assert.Contains(t, out, "- **Annual revenue:** N/A")
	assert.NotContains(t, out, "### Key Decision Makers")
	assert.NotContains(t, out, "### Review")
}

func TestMarkdownSummaryCounts(t *testing.T) {
	batch := []*leads.LeadResult{
		fullLead(),
		{CompanyName: strPtr("Low Fit"), Score: intPtr(3)},
	}

	out := Markdown("robotics", batch)

	assert.Contains(t, out, "- Total leads: 2")
	assert.Contains(t, out, "- Average score: 6.0")
	assert.Contains(t, out, "- High quality (score >= 7): 1")
}
