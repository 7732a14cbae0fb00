// internal/crm/client_test.go
package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-generator/internal/common/logger"
	"lead-generator/internal/leads"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func qualifiedLead() *leads.LeadResult {
	return &leads.LeadResult{
		CompanyName:   strPtr("Acme Robotics"),
		AnnualRevenue: strPtr("$12M"),
		Location:      &leads.Location{City: strPtr("Curitiba"), Country: strPtr("Brazil")},
		WebsiteURL:    strPtr("https://acme-robotics.example.com"),
		Review:        strPtr("Strong fit."),
		NumEmployees:  intPtr(85),
		Score:         intPtr(9),
	}
}

func TestQualifies(t *testing.T) {
	client := NewClient("http://crm", "token", 7, time.Second, logger.NewNoOpLogger())

	assert.True(t, client.Qualifies(qualifiedLead()))
	assert.False(t, client.Qualifies(&leads.LeadResult{Score: intPtr(6)}))
	assert.False(t, client.Qualifies(&leads.LeadResult{CompanyName: strPtr("Unscored")}))
	assert.False(t, client.Qualifies(nil))
}

func TestExportLeadSendsZohoRecord(t *testing.T) {
	var got exportRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v2/Leads", r.URL.Path)
		assert.Equal(t, "Zoho-oauthtoken token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"code": "SUCCESS", "status": "success", "message": "record added"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 7, time.Second, logger.NewNoOpLogger())

	require.NoError(t, client.ExportLead(context.Background(), qualifiedLead()))

	require.Len(t, got.Data, 1)
	record := got.Data[0]
	assert.Equal(t, "Acme Robotics", record.CompanyName)
	assert.Equal(t, "Curitiba", record.City)
	assert.Equal(t, "Brazil", record.Country)
	assert.Equal(t, 9, record.Rating)
	assert.Equal(t, "lead-generator", record.LeadSource)
}

func TestExportLeadFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
		},
		{
			name: "record rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": [{"code": "MANDATORY_NOT_FOUND", "status": "error", "message": "Company is required"}]}`))
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "token", 7, time.Second, logger.NewNoOpLogger())

			err := client.ExportLead(context.Background(), qualifiedLead())
			require.Error(t, err)
		})
	}
}
