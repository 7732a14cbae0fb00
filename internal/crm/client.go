// internal/crm/client.go
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "lead-generator/internal/common/errors"
	commonhttp "lead-generator/internal/common/http"
	"lead-generator/internal/common/logger"
	"lead-generator/internal/common/metrics"
	"lead-generator/internal/leads"
)

// Client pushes qualified leads into the CRM. Exports are one-shot; a
// failed export is logged and counted, never retried here.
type Client struct {
	baseURL    string
	authToken  string
	minScore   int
	httpClient *commonhttp.Client
	logger     logger.Logger
}

type exportRecord struct {
	CompanyName   string  `json:"Company"`
	AnnualRevenue string  `json:"Annual_Revenue,omitempty"`
	Website       string  `json:"Website,omitempty"`
	City          string  `json:"City,omitempty"`
	Country       string  `json:"Country,omitempty"`
	NumEmployees  int     `json:"No_of_Employees,omitempty"`
	Rating        int     `json:"Rating"`
	Description   string  `json:"Description,omitempty"`
	LeadSource    string  `json:"Lead_Source"`
}

type exportRequest struct {
	Data []exportRecord `json:"data"`
}

type exportResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

func NewClient(baseURL, authToken string, minScore int, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		minScore:   minScore,
		httpClient: commonhttp.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{
			"component": "crm-client",
		}),
	}
}

// Qualifies reports whether a lead's score clears the export threshold.
func (c *Client) Qualifies(lead *leads.LeadResult) bool {
	return lead != nil && lead.Score != nil && *lead.Score >= c.minScore
}

// ExportLead writes one lead to the CRM leads endpoint.
func (c *Client) ExportLead(ctx context.Context, lead *leads.LeadResult) error {
	record := toRecord(lead)

	payload, err := json.Marshal(exportRequest{Data: []exportRecord{record}})
	if err != nil {
		return c.fail(fmt.Errorf("encode export: %w", err), record.CompanyName)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/crm/v2/Leads", bytes.NewReader(payload))
	if err != nil {
		return c.fail(fmt.Errorf("build export request: %w", err), record.CompanyName)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.authToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return c.fail(fmt.Errorf("export request: %w", err), record.CompanyName)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(fmt.Errorf("crm returned status %d", resp.StatusCode), record.CompanyName)
	}

	var out exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.fail(fmt.Errorf("decode export response: %w", err), record.CompanyName)
	}
	for _, d := range out.Data {
		if d.Status == "error" {
			return c.fail(fmt.Errorf("crm rejected record: %s (%s)", d.Message, d.Code), record.CompanyName)
		}
	}

	metrics.CRMExports.WithLabelValues("success").Inc()
	c.logger.Info("lead exported to CRM", map[string]interface{}{
		"company": record.CompanyName,
		"rating":  record.Rating,
	})
	return nil
}

func (c *Client) fail(err error, company string) error {
	metrics.CRMExports.WithLabelValues("failed").Inc()
	stdErr := apperrors.NewCRMExportFailedError(err)
	c.logger.Error("CRM export failed", map[string]interface{}{
		"code":    stdErr.Code,
		"details": stdErr.Details,
		"company": company,
	})
	return stdErr
}

func toRecord(lead *leads.LeadResult) exportRecord {
	record := exportRecord{LeadSource: "lead-generator"}

	if lead.CompanyName != nil {
		record.CompanyName = *lead.CompanyName
	}
	if lead.AnnualRevenue != nil {
		record.AnnualRevenue = *lead.AnnualRevenue
	}
	if lead.WebsiteURL != nil {
		record.Website = *lead.WebsiteURL
	}
	if lead.Location != nil {
		if lead.Location.City != nil {
			record.City = *lead.Location.City
		}
		if lead.Location.Country != nil {
			record.Country = *lead.Location.Country
		}
	}
	if lead.NumEmployees != nil {
		record.NumEmployees = *lead.NumEmployees
	}
	if lead.Score != nil {
		record.Rating = *lead.Score
	}
	if lead.Review != nil {
		record.Description = *lead.Review
	}

	return record
}
