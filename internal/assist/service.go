package assist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-voice/internal/audit"
	"github.com/nerrad567/gray-logic-voice/internal/command"
	"github.com/nerrad567/gray-logic-voice/internal/engine"
	"github.com/nerrad567/gray-logic-voice/internal/grammar"
	"github.com/nerrad567/gray-logic-voice/internal/hub"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-voice/internal/vocabulary"
)

// DumpSource fetches a discovery dump from the automation hub.
type DumpSource interface {
	FetchDump(ctx context.Context) (*hub.Dump, error)
}

// Completer generates text from the engine under a grammar constraint.
type Completer interface {
	Complete(ctx context.Context, prompt, grammar string) (*engine.Result, error)
}

// Metrics records pipeline telemetry. All methods must be non-blocking.
type Metrics interface {
	WriteCommandMetric(source, device, action string, valid bool, duration time.Duration)
	WriteRefreshMetric(entityCount, locationCount int, duration time.Duration)
	WriteEngineMetric(status string, tokens int, duration time.Duration)
}

// snapshot is an immutable view of one vocabulary build. Command handling
// reads a snapshot; Refresh swaps in a new one.
type snapshot struct {
	mapping     *vocabulary.Mapping
	grammarText string
	parsed      grammar.Parsed
	normalizer  *command.Normalizer
	entityCount int
	builtAt     time.Time
}

// Outcome is the result of processing one utterance.
type Outcome struct {
	// Command is the normalized structured command, nil if extraction failed.
	Command *command.Command `json:"command,omitempty"`

	// Valid reports whether the command passed grammar validation.
	Valid bool `json:"valid"`

	// Error describes why processing produced no valid command.
	Error string `json:"error,omitempty"`

	// RawOutput is the engine's generated text, useful for debugging.
	RawOutput string `json:"raw_output,omitempty"`

	// DurationMS is the end-to-end processing time.
	DurationMS int64 `json:"duration_ms"`
}

// Service runs the voice command pipeline.
//
// Thread Safety:
//   - HandleText and Refresh are safe for concurrent use.
type Service struct {
	hub       DumpSource
	engine    Completer
	extractor *grammar.Extractor
	auditRepo audit.Repository
	metrics   Metrics
	logger    *logging.Logger

	mu        sync.RWMutex
	snap      *snapshot
	onRefresh func(*vocabulary.Mapping)
}

// NewService creates a pipeline service.
//
// auditRepo and metrics may be nil; the corresponding recording is skipped.
func NewService(dumpSource DumpSource, completer Completer, auditRepo audit.Repository, metrics Metrics, logger *logging.Logger) *Service {
	return &Service{
		hub:       dumpSource,
		engine:    completer,
		extractor: grammar.NewExtractor(),
		auditRepo: auditRepo,
		metrics:   metrics,
		logger:    logger.With("component", "assist"),
	}
}

// Refresh rebuilds the vocabulary snapshot from a fresh hub dump.
//
// On failure the previous snapshot stays in place, so a hub outage degrades
// to stale vocabulary rather than a dead pipeline.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()

	dump, err := s.hub.FetchDump(ctx)
	if err != nil {
		return fmt.Errorf("fetching hub dump: %w", err)
	}

	mapping := vocabulary.BuildMapping(dump)
	text := grammar.Render(mapping)
	parsed := s.extractor.Reload(text)

	snap := &snapshot{
		mapping:     mapping,
		grammarText: text,
		parsed:      parsed,
		normalizer:  command.NewNormalizer(mapping.Vocabulary.Locations),
		entityCount: len(dump.States),
		builtAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	elapsed := time.Since(start)
	s.logger.Info("vocabulary refreshed",
		"entities", snap.entityCount,
		"devices", len(mapping.Vocabulary.Devices),
		"locations", len(mapping.Vocabulary.Locations),
		"duration_ms", elapsed.Milliseconds(),
	)

	if s.metrics != nil {
		s.metrics.WriteRefreshMetric(snap.entityCount, len(mapping.Vocabulary.Locations), elapsed)
	}

	s.mu.RLock()
	hook := s.onRefresh
	s.mu.RUnlock()
	if hook != nil {
		hook(mapping)
	}

	return nil
}

// SetOnRefresh registers a callback invoked after each successful refresh
// with the new mapping. Used to announce vocabulary changes to satellites.
func (s *Service) SetOnRefresh(fn func(*vocabulary.Mapping)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

// RunPeriodicRefresh refreshes the vocabulary on the given interval until
// the context is cancelled. Failures are logged and the next tick retries.
func (s *Service) RunPeriodicRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("periodic refresh failed", "error", err)
			}
		}
	}
}

// HandleText processes one utterance through the full pipeline.
//
// Engine failures return an error. Extraction and validation failures are
// expected outcomes and come back as an Outcome with Valid false.
func (s *Service) HandleText(ctx context.Context, source, text string) (*Outcome, error) {
	snap := s.snapshot()
	if snap == nil {
		return nil, ErrNotReady
	}

	start := time.Now()
	prompt := buildPrompt(text, snap.mapping)

	result, err := s.engine.Complete(ctx, prompt, snap.grammarText)
	if err != nil {
		if s.metrics != nil {
			s.metrics.WriteEngineMetric("error", 0, time.Since(start))
		}
		s.record(ctx, source, text, nil, false, err.Error(), time.Since(start))
		return nil, fmt.Errorf("engine completion: %w", err)
	}
	if s.metrics != nil {
		s.metrics.WriteEngineMetric("ok", result.Tokens, result.Duration)
	}

	outcome := &Outcome{RawOutput: result.Content}

	cmd := snap.normalizer.Process(result.Content)
	if cmd == nil {
		outcome.Error = ErrExtractionFailed.Error()
		outcome.DurationMS = time.Since(start).Milliseconds()
		s.record(ctx, source, text, nil, false, outcome.Error, time.Since(start))
		s.logger.Warn("extraction failed", "source", source, "output", result.Content)
		return outcome, nil
	}
	outcome.Command = cmd

	if verr := grammar.Validate(result.Content, snap.parsed); verr != nil {
		outcome.Error = verr.Error()
	} else {
		outcome.Valid = true
	}

	elapsed := time.Since(start)
	outcome.DurationMS = elapsed.Milliseconds()

	s.record(ctx, source, text, cmd, outcome.Valid, outcome.Error, elapsed)

	s.logger.Info("command processed",
		"source", source,
		"device", cmd.Device,
		"action", cmd.Action,
		"valid", outcome.Valid,
		"duration_ms", outcome.DurationMS,
	)

	return outcome, nil
}

// record writes the audit entry and command metric for one utterance.
func (s *Service) record(ctx context.Context, source, text string, cmd *command.Command, valid bool, errText string, elapsed time.Duration) {
	device, action := "", ""
	if cmd != nil {
		device = cmd.Device
		action = cmd.Action
	}

	if s.auditRepo != nil {
		rec := &audit.CommandRecord{
			Source:     source,
			RawText:    text,
			Device:     device,
			Action:     action,
			Valid:      valid,
			Error:      errText,
			DurationMS: elapsed.Milliseconds(),
		}
		if cmd != nil {
			if cmd.Location != nil {
				rec.Location = *cmd.Location
			}
			if cmd.Value != nil {
				rec.Value = *cmd.Value
			}
		}
		if err := s.auditRepo.Create(ctx, rec); err != nil {
			s.logger.Warn("audit write failed", "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.WriteCommandMetric(source, device, action, valid, elapsed)
	}
}

// snapshot returns the current vocabulary snapshot, or nil before the
// first successful refresh.
func (s *Service) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Ready reports whether a vocabulary snapshot is available.
func (s *Service) Ready() bool {
	return s.snapshot() != nil
}

// Mapping returns the current vocabulary mapping.
func (s *Service) Mapping() (*vocabulary.Mapping, error) {
	snap := s.snapshot()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap.mapping, nil
}

// GrammarText returns the current rendered GBNF grammar.
func (s *Service) GrammarText() (string, error) {
	snap := s.snapshot()
	if snap == nil {
		return "", ErrNotReady
	}
	return snap.grammarText, nil
}

// Combinations returns every location and device pair the current grammar
// can produce.
func (s *Service) Combinations() ([]grammar.Combination, error) {
	snap := s.snapshot()
	if snap == nil {
		return nil, ErrNotReady
	}
	return grammar.Combinations(snap.parsed), nil
}

// LastRefresh returns when the current snapshot was built, zero if none.
func (s *Service) LastRefresh() time.Time {
	snap := s.snapshot()
	if snap == nil {
		return time.Time{}
	}
	return snap.builtAt
}
