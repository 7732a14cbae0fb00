// internal/leads/models.go
package leads

// LeadResult is the structured output handed to the caller: a company
// profile, its contacts, and a fit score. Every field is independently
// optional; a degraded-mode result always carries company_name, review,
// and score. Constructed fresh per request and never mutated afterwards.
type LeadResult struct {
	CompanyName       *string         `json:"company_name,omitempty"`
	AnnualRevenue     *string         `json:"annual_revenue,omitempty"`
	Location          *Location       `json:"location,omitempty"`
	WebsiteURL        *string         `json:"website_url,omitempty"`
	Review            *string         `json:"review,omitempty"`
	NumEmployees      *int            `json:"num_employees,omitempty"`
	KeyDecisionMakers []DecisionMaker `json:"key_decision_makers,omitempty"`
	Score             *int            `json:"score,omitempty"` // intended range 0-10, not enforced
}

type Location struct {
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

type DecisionMaker struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
}

// Inputs is the request shape. Topic is the search focus; MaxLeads is
// advisory only and never enforced; AdditionalInfo is passed through as
// pipeline context untouched.
type Inputs struct {
	Topic          string `json:"topic"`
	MaxLeads       int    `json:"max_leads,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// ToMap flattens the inputs into the pipeline input mapping the engine
// interpolates into its prompts.
func (in Inputs) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"topic": in.Topic,
	}
	if in.MaxLeads > 0 {
		m["max_leads"] = in.MaxLeads
	}
	if in.AdditionalInfo != "" {
		m["additional_info"] = in.AdditionalInfo
	}
	return m
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
