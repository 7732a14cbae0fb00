// internal/leads/facade.go
package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "lead-generator/internal/common/errors"
	"lead-generator/internal/common/logger"
	"lead-generator/internal/common/metrics"
	"lead-generator/internal/common/observability"
	"lead-generator/internal/engine"
	"lead-generator/internal/usage"
)

// Degraded-mode sentinels. CompanyNameUnavailable marks results produced
// while the engine could not be acquired; CompanyNameFailed marks results
// produced after a live pipeline raised mid-run.
const (
	CompanyNameUnavailable = "Modo Limitado"
	CompanyNameFailed      = "Erro na Geração de Leads"

	locationNA = "N/A"

	modeDelegated = "delegated"
	modeDegraded  = "degraded"
)

// Service is the lead generation facade. Given structured inputs it either
// delegates to the orchestration engine and returns its coerced result, or
// returns a structurally identical degraded result. The caller never
// branches on availability and never sees an error.
type Service struct {
	availability engine.Availability
	binding      engine.Binding
	pipeline     *engine.PipelineSpec

	cache   *Cache
	tracker *usage.Tracker
	obs     *observability.Observability
	logger  logger.Logger
}

// NewService wires the facade from a completed probe. cache, tracker, and
// obs are optional; pass nil to disable them.
func NewService(probe engine.ProbeResult, cache *Cache, tracker *usage.Tracker, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		availability: probe.Availability,
		binding:      probe.Binding,
		pipeline:     probe.Pipeline,
		cache:        cache,
		tracker:      tracker,
		obs:          obs,
		logger: log.WithFields(map[string]interface{}{
			"component": "lead-facade",
		}),
	}
}

// Availability reports the probe outcome this service was built with.
func (s *Service) Availability() engine.Availability {
	return s.availability
}

// Run produces a LeadResult for the given inputs. It never returns an
// error and never panics: every failure inside the delegation path is
// absorbed and converted into the degraded result. A single attempt, no
// retries, no facade-level timeout; the call blocks until the pipeline
// completes or raises.
func (s *Service) Run(ctx context.Context, in Inputs) (result *LeadResult) {
	start := time.Now()
	mode := modeDelegated

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("delegation panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
				"topic": in.Topic,
			})
			mode = modeDegraded
			result = s.failedResult(in.Topic)
		}

		metrics.GenerationRequests.WithLabelValues(mode).Inc()
		metrics.GenerationDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
		if s.obs != nil {
			s.obs.RecordRun(ctx, mode)
			s.obs.RecordRunDuration(ctx, time.Since(start), mode)
		}
	}()

	eng, ok := s.binding.Engine()
	if !ok {
		mode = modeDegraded
		return s.unavailableResult(in.Topic)
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, in.Topic); err == nil && cached != nil {
			metrics.CacheHits.Inc()
			s.logger.Info("result served from cache", map[string]interface{}{"topic": in.Topic})
			return cached
		}
	}

	out, err := eng.Kickoff(ctx, s.pipeline, in.ToMap())
	if err != nil {
		// The error identity stays in the log only; the user-visible
		// result echoes just the topic.
		stdErr := apperrors.NewEngineDelegationFailedError(err)
		s.logger.Error("engine delegation failed", map[string]interface{}{
			"code":    stdErr.Code,
			"details": stdErr.Details,
			"topic":   in.Topic,
		})
		mode = modeDegraded
		return s.failedResult(in.Topic)
	}

	lead, err := s.coerce(out)
	if err != nil {
		stdErr := apperrors.NewEngineOutputInvalidError(err.Error())
		s.logger.Error("engine output rejected", map[string]interface{}{
			"code":    stdErr.Code,
			"details": stdErr.Details,
			"topic":   in.Topic,
		})
		mode = modeDegraded
		return s.failedResult(in.Topic)
	}

	if s.tracker != nil {
		s.tracker.Record(ctx, usage.RunUsage{
			Topic:            in.Topic,
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, in.Topic, lead); err != nil {
			s.logger.Warn("result cache write failed", map[string]interface{}{
				"topic": in.Topic,
				"error": err.Error(),
			})
		}
	}

	return lead
}

// coerce validates the final task output against the lead schema and
// unmarshals it field-for-field. No renaming, no silent drops.
func (s *Service) coerce(out *engine.RunOutput) (*LeadResult, error) {
	raw := out.FinalOutput()
	if raw == "" {
		return nil, fmt.Errorf("pipeline produced no output")
	}

	if err := ValidateOutput(raw); err != nil {
		return nil, err
	}

	var lead LeadResult
	if err := json.Unmarshal([]byte(raw), &lead); err != nil {
		return nil, fmt.Errorf("unmarshal pipeline output: %w", err)
	}

	return &lead, nil
}

// unavailableResult is the degraded shape for an engine that was never
// acquired: sentinel company name, N/A location, zero score.
func (s *Service) unavailableResult(topic string) *LeadResult {
	review := fmt.Sprintf(
		"A geração de leads para %q está em modo limitado: o motor de orquestração não pôde ser carregado. "+
			"Configure as credenciais do motor e reinicie o serviço para habilitar a pesquisa completa.",
		topic,
	)

	return &LeadResult{
		CompanyName: strPtr(CompanyNameUnavailable),
		Review:      strPtr(review),
		Score:       intPtr(0),
		Location: &Location{
			City:    strPtr(locationNA),
			Country: strPtr(locationNA),
		},
	}
}

// failedResult is the degraded shape for a live pipeline that raised:
// sentinel company name, zero score, topic echoed, no location sentinel.
func (s *Service) failedResult(topic string) *LeadResult {
	review := fmt.Sprintf(
		"A pesquisa de leads para %q falhou durante a execução do pipeline. Tente novamente em alguns minutos.",
		topic,
	)

	return &LeadResult{
		CompanyName: strPtr(CompanyNameFailed),
		Review:      strPtr(review),
		Score:       intPtr(0),
	}
}
