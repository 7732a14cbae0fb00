// internal/engine/client_test.go
package engine

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-generator/internal/common/logger"
)

func testSpec() *PipelineSpec {
	return &PipelineSpec{
		Process: ProcessSequential,
		Roles: map[string]Role{
			RoleLeadGenerator: {Role: "Lead Generation Specialist", Goal: "find leads"},
		},
		Tasks: []TaskDef{
			{ID: TaskLeadGeneration, Description: "research", ExpectedOutput: "json", Agent: RoleLeadGenerator},
		},
	}
}

func TestKickoffSubmitsPipelineAndDecodesResult(t *testing.T) {
	var got kickoffRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pipelines/kickoff", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		resp := RunOutput{
			TasksOutput: []TaskOutput{
				{Task: TaskLeadGeneration, Agent: RoleLeadGenerator, Raw: `{"company_name": "Acme"}`},
			},
			Raw:   `{"company_name": "Acme"}`,
			Usage: UsageMetrics{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o-mini", 5*time.Second, logger.NewNoOpLogger())

	out, err := client.Kickoff(context.Background(), testSpec(), map[string]interface{}{
		"topic":     "robotics",
		"max_leads": 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, ProcessSequential, got.Process)
	assert.Equal(t, "robotics", got.Inputs["topic"])
	require.Len(t, got.Tasks, 1)

	assert.Equal(t, 15, out.Usage.TotalTokens)
	assert.Equal(t, `{"company_name": "Acme"}`, out.FinalOutput())
}

func TestKickoffNonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exhausted"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o-mini", 5*time.Second, logger.NewNoOpLogger())

	_, err := client.Kickoff(context.Background(), testSpec(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestKickoffContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4o-mini", 30*time.Second, logger.NewNoOpLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Kickoff(ctx, testSpec(), nil)
	require.Error(t, err)
}

func TestFinalOutputFallsBackToRaw(t *testing.T) {
	out := &RunOutput{Raw: "fallback"}
	assert.Equal(t, "fallback", out.FinalOutput())

	out.TasksOutput = []TaskOutput{{Raw: "first"}, {Raw: "last"}}
	assert.Equal(t, "last", out.FinalOutput())
}
