// internal/report/markdown.go
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lead-generator/internal/leads"
)

// Markdown renders a lead batch as a human-readable report with a raw
// JSON appendix. Missing fields render as N/A rather than being omitted.
func Markdown(topic string, results []*leads.LeadResult) string {
	var b strings.Builder

	b.WriteString("# Lead Generation Report\n\n")
	b.WriteString(fmt.Sprintf("**Topic:** %s\n\n", topic))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().UTC().Format(time.RFC3339)))

	summary := leads.Summarize(results)
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Total leads: %d\n", summary.TotalLeads))
	b.WriteString(fmt.Sprintf("- Average score: %.1f\n", summary.AverageScore))
	b.WriteString(fmt.Sprintf("- High quality (score >= %d): %d\n\n", leads.HighQualityThreshold, summary.HighQuality))

	for i, lead := range results {
		writeLead(&b, i+1, lead)
	}

	b.WriteString("## Raw JSON\n\n```json\n")
	raw, err := json.MarshalIndent(results, "", "  ")
	if err == nil {
		b.Write(raw)
	}
	b.WriteString("\n```\n")

	return b.String()
}

func writeLead(b *strings.Builder, n int, lead *leads.LeadResult) {
	b.WriteString(fmt.Sprintf("## %d. %s\n\n", n, orNA(lead.CompanyName)))

	b.WriteString(fmt.Sprintf("- **Score:** %s\n", intOrNA(lead.Score)))
	b.WriteString(fmt.Sprintf("- **Annual revenue:** %s\n", orNA(lead.AnnualRevenue)))
	b.WriteString(fmt.Sprintf("- **Location:** %s\n", location(lead.Location)))
	b.WriteString(fmt.Sprintf("- **Website:** %s\n", orNA(lead.WebsiteURL)))
	b.WriteString(fmt.Sprintf("- **Employees:** %s\n\n", intOrNA(lead.NumEmployees)))

	if len(lead.KeyDecisionMakers) > 0 {
		b.WriteString("### Key Decision Makers\n\n")
		for _, dm := range lead.KeyDecisionMakers {
			b.WriteString(fmt.Sprintf("- %s - %s", orNA(dm.Name), orNA(dm.Position)))
			if dm.LinkedIn != nil && *dm.LinkedIn != "" {
				b.WriteString(fmt.Sprintf(" ([LinkedIn](%s))", *dm.LinkedIn))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if lead.Review != nil && *lead.Review != "" {
		b.WriteString("### Review\n\n")
		b.WriteString(*lead.Review)
		b.WriteString("\n\n")
	}
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func intOrNA(n *int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}

func location(loc *leads.Location) string {
	if loc == nil {
		return "N/A"
	}
	return fmt.Sprintf("%s, %s", orNA(loc.City), orNA(loc.Country))
}
