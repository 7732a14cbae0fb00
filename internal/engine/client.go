// internal/engine/client.go
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonhttp "lead-generator/internal/common/http"
	"lead-generator/internal/common/logger"
)

// Client is the HTTP binding to the external orchestration service. It
// submits a declared pipeline plus inputs and blocks until the run
// completes or fails. No retries: a single attempt, then the caller
// degrades (the facade owns that policy).
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

type kickoffRequest struct {
	Model   string                 `json:"model"`
	Process string                 `json:"process"`
	Roles   map[string]Role        `json:"roles"`
	Tasks   []TaskDef              `json:"tasks"`
	Inputs  map[string]interface{} `json:"inputs"`
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: commonhttp.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{
			"component": "engine-client",
		}),
	}
}

// Kickoff runs the pipeline synchronously to completion.
func (c *Client) Kickoff(ctx context.Context, spec *PipelineSpec, inputs map[string]interface{}) (*RunOutput, error) {
	payload := kickoffRequest{
		Model:   c.model,
		Process: spec.Process,
		Roles:   spec.Roles,
		Tasks:   spec.Tasks,
		Inputs:  inputs,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal kickoff request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/pipelines/kickoff", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build kickoff request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("engine kickoff: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("engine kickoff returned %d: %s", resp.StatusCode, string(snippet))
	}

	var out RunOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode kickoff response: %w", err)
	}

	c.logger.Info("pipeline run completed", map[string]interface{}{
		"tasks":       len(out.TasksOutput),
		"totalTokens": out.Usage.TotalTokens,
		"duration":    time.Since(started).String(),
	})

	return &out, nil
}
