// internal/engine/types.go
package engine

import "context"

// Engine executes a declared role/task pipeline to completion and returns
// its structured output. The orchestration itself happens in an external
// service; this package only declares pipelines and binds to that service.
type Engine interface {
	Kickoff(ctx context.Context, spec *PipelineSpec, inputs map[string]interface{}) (*RunOutput, error)
}

// Role is an opaque capability configuration consumed by the engine.
// Content comes from configs/agents.yaml and is not interpreted here.
type Role struct {
	Role      string   `yaml:"role" json:"role"`
	Goal      string   `yaml:"goal" json:"goal"`
	Backstory string   `yaml:"backstory" json:"backstory"`
	Tools     []string `yaml:"tools" json:"tools,omitempty"`
}

// TaskDef is a named unit of work with declared dependencies on other
// tasks' outputs. Context lists the task IDs whose outputs the engine must
// hand to this task.
type TaskDef struct {
	ID             string   `yaml:"-" json:"id"`
	Description    string   `yaml:"description" json:"description"`
	ExpectedOutput string   `yaml:"expected_output" json:"expected_output"`
	Agent          string   `yaml:"agent" json:"agent"`
	Context        []string `yaml:"context" json:"context,omitempty"`
}

// PipelineSpec is the full pipeline declaration sent to the engine:
// four roles, four tasks, sequential process.
type PipelineSpec struct {
	Process string          `json:"process"`
	Roles   map[string]Role `json:"roles"`
	Tasks   []TaskDef       `json:"tasks"`
}

// TaskOutput is one task's result as reported by the engine.
type TaskOutput struct {
	Task  string `json:"task"`
	Agent string `json:"agent"`
	Raw   string `json:"raw"`
}

// UsageMetrics carries the engine's token accounting for a run.
type UsageMetrics struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RunOutput is the engine's structured result for a completed run.
type RunOutput struct {
	TasksOutput []TaskOutput `json:"tasks_output"`
	Raw         string       `json:"raw"`
	Usage       UsageMetrics `json:"usage_metrics"`
}

// FinalOutput returns the last task's raw output, falling back to the
// top-level raw payload when per-task outputs are missing.
func (r *RunOutput) FinalOutput() string {
	if len(r.TasksOutput) > 0 {
		return r.TasksOutput[len(r.TasksOutput)-1].Raw
	}
	return r.Raw
}

// Binding is the capability object injected into the facade: either a live
// engine handle or an absent one carrying the acquisition failure reason.
// Dispatch happens once per call, never by switching types.
type Binding struct {
	engine Engine
	reason string
}

// Live wraps an acquired engine handle.
func Live(e Engine) Binding {
	return Binding{engine: e}
}

// Absent records why no engine handle exists.
func Absent(reason string) Binding {
	return Binding{reason: reason}
}

// Engine returns the live handle, or false when the binding is absent.
func (b Binding) Engine() (Engine, bool) {
	return b.engine, b.engine != nil
}

// Reason returns the acquisition failure text for an absent binding.
func (b Binding) Reason() string {
	return b.reason
}

// Availability is the process-wide engine state set once at probe time and
// read-only afterwards.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
