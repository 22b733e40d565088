package assist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-voice/internal/audit"
	"github.com/nerrad567/gray-logic-voice/internal/engine"
	"github.com/nerrad567/gray-logic-voice/internal/hub"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
)

// fakeDumpSource returns a canned discovery dump.
type fakeDumpSource struct {
	dump *hub.Dump
	err  error
}

func (f *fakeDumpSource) FetchDump(context.Context) (*hub.Dump, error) {
	return f.dump, f.err
}

// fakeCompleter returns canned engine output.
type fakeCompleter struct {
	content string
	err     error

	gotPrompt  string
	gotGrammar string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt, grammar string) (*engine.Result, error) {
	f.gotPrompt = prompt
	f.gotGrammar = grammar
	if f.err != nil {
		return nil, f.err
	}
	return &engine.Result{Content: f.content, Tokens: 10, Duration: 50 * time.Millisecond}, nil
}

// fakeAuditRepo captures created records.
type fakeAuditRepo struct {
	records []*audit.CommandRecord
}

func (f *fakeAuditRepo) Create(_ context.Context, rec *audit.CommandRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeAuditRepo) List(context.Context, audit.Filter) (*audit.ListResult, error) {
	return &audit.ListResult{}, nil
}

// testDump builds a small home: kitchen lights and a living room fan.
func testDump() *hub.Dump {
	return &hub.Dump{
		States: []hub.Entity{
			{EntityID: "light.kitchen_main", State: "off", Attributes: map[string]any{"friendly_name": "Kitchen Main"}},
			{EntityID: "fan.living_room_ceiling", State: "off", Attributes: map[string]any{"friendly_name": "Ceiling Fan"}},
		},
		EntityRegistry: []hub.RegistryEntry{
			{EntityID: "light.kitchen_main", AreaID: "kitchen"},
			{EntityID: "fan.living_room_ceiling", AreaID: "living_room"},
		},
		Areas: []hub.Area{
			{AreaID: "kitchen", Name: "Kitchen"},
			{AreaID: "living_room", Name: "Living Room"},
		},
	}
}

func newTestService(t *testing.T, completer Completer, repo audit.Repository) *Service {
	t.Helper()

	svc := NewService(&fakeDumpSource{dump: testDump()}, completer, repo, nil, logging.Default())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return svc
}

func TestHandleText_NotReady(t *testing.T) {
	svc := NewService(&fakeDumpSource{dump: testDump()}, &fakeCompleter{}, nil, nil, logging.Default())

	_, err := svc.HandleText(context.Background(), "api", "turn on the lights")
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("error = %v, want ErrNotReady", err)
	}
}

func TestHandleText_ValidCommand(t *testing.T) {
	completer := &fakeCompleter{
		content: `Assistant: {"device": "lights", "action": "turn on", "location": "kitchen"}`,
	}
	repo := &fakeAuditRepo{}
	svc := newTestService(t, completer, repo)

	outcome, err := svc.HandleText(context.Background(), "api", "turn on the kitchen lights")
	if err != nil {
		t.Fatalf("HandleText() error = %v", err)
	}

	if !outcome.Valid {
		t.Errorf("outcome not valid: %s", outcome.Error)
	}
	if outcome.Command == nil {
		t.Fatal("outcome has no command")
	}
	if outcome.Command.Device != "lights" {
		t.Errorf("Device = %q, want %q", outcome.Command.Device, "lights")
	}
	if outcome.Command.Location == nil || *outcome.Command.Location != "kitchen" {
		t.Errorf("Location = %v, want kitchen", outcome.Command.Location)
	}

	// Prompt carries the vocabulary; grammar constrains the engine.
	if completer.gotGrammar == "" {
		t.Error("engine should receive a grammar")
	}
	if completer.gotPrompt == "" {
		t.Error("engine should receive a prompt")
	}

	if len(repo.records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if !rec.Valid || rec.Device != "lights" || rec.Source != "api" {
		t.Errorf("audit record = %+v", rec)
	}
}

func TestHandleText_LocationSynonym(t *testing.T) {
	completer := &fakeCompleter{
		content: `{"device": "lights", "action": "turn off", "location": "whole house"}`,
	}
	svc := newTestService(t, completer, nil)

	outcome, err := svc.HandleText(context.Background(), "api", "turn off all the lights")
	if err != nil {
		t.Fatalf("HandleText() error = %v", err)
	}

	if outcome.Command == nil {
		t.Fatal("outcome has no command")
	}
	if outcome.Command.Location == nil || *outcome.Command.Location != "all" {
		t.Errorf("Location = %v, want all", outcome.Command.Location)
	}
}

func TestHandleText_UnknownDevice(t *testing.T) {
	completer := &fakeCompleter{
		content: `{"device": "dishwasher", "action": "turn on"}`,
	}
	repo := &fakeAuditRepo{}
	svc := newTestService(t, completer, repo)

	outcome, err := svc.HandleText(context.Background(), "api", "start the dishwasher")
	if err != nil {
		t.Fatalf("HandleText() error = %v", err)
	}

	if outcome.Valid {
		t.Error("unknown device should not validate")
	}
	if outcome.Command == nil {
		t.Error("command should still be extracted")
	}
	if len(repo.records) != 1 || repo.records[0].Valid {
		t.Errorf("audit should record an invalid command")
	}
}

func TestHandleText_ExtractionFailure(t *testing.T) {
	completer := &fakeCompleter{content: "I cannot help with that."}
	repo := &fakeAuditRepo{}
	svc := newTestService(t, completer, repo)

	outcome, err := svc.HandleText(context.Background(), "mqtt", "do something")
	if err != nil {
		t.Fatalf("HandleText() error = %v", err)
	}

	if outcome.Valid {
		t.Error("extraction failure should not be valid")
	}
	if outcome.Command != nil {
		t.Error("extraction failure should yield no command")
	}
	if outcome.Error == "" {
		t.Error("outcome should carry an error description")
	}
	if len(repo.records) != 1 {
		t.Fatalf("got %d audit records, want 1", len(repo.records))
	}
	if repo.records[0].Source != "mqtt" {
		t.Errorf("Source = %q, want mqtt", repo.records[0].Source)
	}
}

func TestHandleText_EngineError(t *testing.T) {
	completer := &fakeCompleter{err: engine.ErrUnavailable}
	repo := &fakeAuditRepo{}
	svc := newTestService(t, completer, repo)

	_, err := svc.HandleText(context.Background(), "api", "turn on the lights")
	if !errors.Is(err, engine.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}

	// Engine failures still leave an audit trail.
	if len(repo.records) != 1 {
		t.Errorf("got %d audit records, want 1", len(repo.records))
	}
}

func TestRefresh_FailureKeepsSnapshot(t *testing.T) {
	source := &fakeDumpSource{dump: testDump()}
	svc := NewService(source, &fakeCompleter{}, nil, nil, logging.Default())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	first := svc.LastRefresh()

	source.err = hub.ErrNotConnected
	if err := svc.Refresh(context.Background()); err == nil {
		t.Error("Refresh() should fail when dump fetch fails")
	}

	if !svc.Ready() {
		t.Error("previous snapshot should survive a failed refresh")
	}
	if svc.LastRefresh() != first {
		t.Error("failed refresh should not replace the snapshot")
	}
}

func TestMapping_ContainsDiscoveredVocabulary(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{}, nil)

	m, err := svc.Mapping()
	if err != nil {
		t.Fatalf("Mapping() error = %v", err)
	}

	foundKitchen := false
	for _, loc := range m.Vocabulary.Locations {
		if loc == "kitchen" {
			foundKitchen = true
		}
	}
	if !foundKitchen {
		t.Errorf("Locations = %v, want to include kitchen", m.Vocabulary.Locations)
	}
}

func TestCombinations(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{}, nil)

	combos, err := svc.Combinations()
	if err != nil {
		t.Fatalf("Combinations() error = %v", err)
	}
	if len(combos) == 0 {
		t.Error("expected some location and device combinations")
	}
}

func TestGrammarText_RoundTrips(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{}, nil)

	text, err := svc.GrammarText()
	if err != nil {
		t.Fatalf("GrammarText() error = %v", err)
	}
	if text == "" {
		t.Fatal("grammar text should not be empty")
	}
}
