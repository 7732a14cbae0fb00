// internal/leads/summary.go
package leads

import "sort"

// HighQualityThreshold is the minimum score for a lead to count as high
// quality in summaries and to qualify for CRM export.
const HighQualityThreshold = 7

// Summary aggregates a batch of results for reporting.
type Summary struct {
	TotalLeads   int     `json:"total_leads"`
	AverageScore float64 `json:"average_score"`
	HighQuality  int     `json:"high_quality"`
}

// Summarize computes batch statistics. Leads without a score contribute
// zero to the average.
func Summarize(leads []*LeadResult) Summary {
	s := Summary{TotalLeads: len(leads)}
	if len(leads) == 0 {
		return s
	}

	total := 0
	for _, l := range leads {
		score := 0
		if l.Score != nil {
			score = *l.Score
		}
		total += score
		if score >= HighQualityThreshold {
			s.HighQuality++
		}
	}

	s.AverageScore = float64(total) / float64(len(leads))
	return s
}

// SortByScore orders leads highest score first, in place. Unscored leads
// sink to the end.
func SortByScore(leads []*LeadResult) {
	sort.SliceStable(leads, func(i, j int) bool {
		si, sj := 0, 0
		if leads[i].Score != nil {
			si = *leads[i].Score
		}
		if leads[j].Score != nil {
			sj = *leads[j].Score
		}
		return si > sj
	})
}
