// internal/engine/probe.go
package engine

import (
	"fmt"
	"sync"

	"lead-generator/internal/common/config"
	apperrors "lead-generator/internal/common/errors"
	"lead-generator/internal/common/logger"
)

// ProbeResult is everything acquisition produces: the availability state,
// the engine binding (live or absent), and the validated pipeline
// declaration. Constructed once per process and injected into the facade.
type ProbeResult struct {
	Availability Availability
	Binding      Binding
	Pipeline     *PipelineSpec
}

// Prober attempts, once, to acquire the orchestration engine and its tool
// bindings. Acquisition failure is recorded, never propagated: degraded
// state is a valid outcome and the host process must not crash.
type Prober struct {
	engineCfg config.EngineConfig
	toolsCfg  config.ToolsConfig
	logger    logger.Logger

	once   sync.Once
	result ProbeResult
}

func NewProber(engineCfg config.EngineConfig, toolsCfg config.ToolsConfig, log logger.Logger) *Prober {
	return &Prober{
		engineCfg: engineCfg,
		toolsCfg:  toolsCfg,
		logger: log.WithFields(map[string]interface{}{
			"component": "engine-probe",
		}),
	}
}

// Probe returns the acquisition result. The first call does the work;
// later calls return the cached result, so availability is stable within
// a process lifetime.
func (p *Prober) Probe() ProbeResult {
	p.once.Do(func() {
		p.result = p.acquire()
	})
	return p.result
}

func (p *Prober) acquire() (res ProbeResult) {
	// Broadest reasonable boundary: even a panic inside acquisition must
	// come back as an unavailable engine, not a crash.
	defer func() {
		if r := recover(); r != nil {
			res = p.unavailable(fmt.Errorf("engine acquisition panicked: %v", r))
		}
	}()

	if p.engineCfg.APIKey == "" {
		stdErr := apperrors.NewCredentialMissingError("engine.api_key")
		return p.unavailable(stdErr)
	}
	if p.toolsCfg.WebSearch.APIKey == "" {
		stdErr := apperrors.NewCredentialMissingError("tools.web_search.api_key")
		return p.unavailable(stdErr)
	}
	if p.engineCfg.BaseURL == "" {
		return p.unavailable(fmt.Errorf("engine.base_url is not configured"))
	}

	spec, err := LoadPipeline(p.engineCfg.AgentsPath, p.engineCfg.TasksPath)
	if err != nil {
		return p.unavailable(apperrors.NewPipelineConfigInvalidError(err.Error()))
	}

	client := NewClient(
		p.engineCfg.BaseURL,
		p.engineCfg.APIKey,
		p.engineCfg.Model,
		config.GetDuration(p.engineCfg.Timeout),
		p.logger,
	)

	p.logger.Info("orchestration engine acquired", map[string]interface{}{
		"baseURL": p.engineCfg.BaseURL,
		"model":   p.engineCfg.Model,
		"tasks":   len(spec.Tasks),
	})

	return ProbeResult{
		Availability: Availability{Available: true},
		Binding:      Live(client),
		Pipeline:     spec,
	}
}

func (p *Prober) unavailable(err error) ProbeResult {
	reason := err.Error()

	p.logger.Warn("orchestration engine unavailable, running in degraded mode", map[string]interface{}{
		"reason": reason,
	})

	return ProbeResult{
		Availability: Availability{Available: false, Reason: reason},
		Binding:      Absent(reason),
	}
}
