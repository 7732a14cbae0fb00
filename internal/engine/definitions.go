// internal/engine/definitions.go
package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixed role and task identifiers. The configuration files supply content
// for these keys; the identifiers and their dependency wiring are a fixed
// contract that loading enforces.
const (
	RoleLeadGenerator = "lead_generator"
	RoleContactAgent  = "contact_agent"
	RoleLeadQualifier = "lead_qualifier"
	RoleSalesManager  = "sales_manager"

	TaskLeadGeneration    = "lead_generation_task"
	TaskContactResearch   = "contact_research_task"
	TaskLeadQualification = "lead_qualification_task"
	TaskSalesManagement   = "sales_management_task"

	ProcessSequential = "sequential"
)

// taskOrder is the fixed sequential execution order.
var taskOrder = []string{
	TaskLeadGeneration,
	TaskContactResearch,
	TaskLeadQualification,
	TaskSalesManagement,
}

// taskContexts is the fixed data-dependency wiring: qualification and
// management must see the research output, enforced by explicit
// context-passing rather than incidental ordering.
var taskContexts = map[string][]string{
	TaskLeadGeneration:    nil,
	TaskContactResearch:   {TaskLeadGeneration},
	TaskLeadQualification: {TaskLeadGeneration, TaskContactResearch},
	TaskSalesManagement:   {TaskLeadGeneration, TaskLeadQualification, TaskContactResearch},
}

// taskAgents maps each task to the role that runs it.
var taskAgents = map[string]string{
	TaskLeadGeneration:    RoleLeadGenerator,
	TaskContactResearch:   RoleContactAgent,
	TaskLeadQualification: RoleLeadQualifier,
	TaskSalesManagement:   RoleSalesManager,
}

// LoadPipeline reads the role and task configuration files and assembles
// the pipeline declaration. The files supply prompt content only; identity,
// agent assignment, and dependency wiring must match the fixed contract.
func LoadPipeline(agentsPath, tasksPath string) (*PipelineSpec, error) {
	roles, err := loadRoles(agentsPath)
	if err != nil {
		return nil, err
	}

	tasks, err := loadTasks(tasksPath)
	if err != nil {
		return nil, err
	}

	ordered := make([]TaskDef, 0, len(taskOrder))
	for _, id := range taskOrder {
		def, ok := tasks[id]
		if !ok {
			return nil, fmt.Errorf("tasks config %s: missing task %q", tasksPath, id)
		}
		def.ID = id

		if def.Agent != taskAgents[id] {
			return nil, fmt.Errorf("task %q: agent must be %q, got %q", id, taskAgents[id], def.Agent)
		}
		if !sameStrings(def.Context, taskContexts[id]) {
			return nil, fmt.Errorf("task %q: context wiring must be %v, got %v", id, taskContexts[id], def.Context)
		}

		ordered = append(ordered, def)
	}

	return &PipelineSpec{
		Process: ProcessSequential,
		Roles:   roles,
		Tasks:   ordered,
	}, nil
}

func loadRoles(path string) (map[string]Role, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents config: %w", err)
	}

	var roles map[string]Role
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("parse agents config %s: %w", path, err)
	}

	for _, id := range []string{RoleLeadGenerator, RoleContactAgent, RoleLeadQualifier, RoleSalesManager} {
		role, ok := roles[id]
		if !ok {
			return nil, fmt.Errorf("agents config %s: missing role %q", path, id)
		}
		if role.Role == "" || role.Goal == "" {
			return nil, fmt.Errorf("agents config %s: role %q needs role and goal fields", path, id)
		}
	}

	return roles, nil
}

func loadTasks(path string) (map[string]TaskDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks config: %w", err)
	}

	var tasks map[string]TaskDef
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks config %s: %w", path, err)
	}

	return tasks, nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
