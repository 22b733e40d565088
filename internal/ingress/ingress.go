package ingress

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/gray-logic-voice/internal/assist"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-voice/internal/vocabulary"
)

// handleTimeout bounds processing of a single utterance. Generation
// dominates; this sits above the engine request timeout.
const handleTimeout = 90 * time.Second

// Processor handles utterances and refresh requests. Satisfied by
// assist.Service.
type Processor interface {
	HandleText(ctx context.Context, source, text string) (*assist.Outcome, error)
	Refresh(ctx context.Context) error
}

// commandPayload is the JSON body satellites publish. Plain text payloads
// are accepted too.
type commandPayload struct {
	Text string `json:"text"`
}

// resultPayload is published on the result topic for each utterance.
type resultPayload struct {
	*assist.Outcome
	Source string `json:"source"`
}

// Ingress subscribes to voice topics and routes utterances to the pipeline.
type Ingress struct {
	client *mqtt.Client
	proc   Processor
	qos    byte
	logger *logging.Logger
}

// New creates an MQTT ingress.
func New(client *mqtt.Client, proc Processor, qos byte, logger *logging.Logger) *Ingress {
	return &Ingress{
		client: client,
		proc:   proc,
		qos:    qos,
		logger: logger.With("component", "ingress"),
	}
}

// Start subscribes to the command and refresh topics.
//
// Handlers run on paho goroutines; each utterance gets its own bounded
// context so a stuck engine cannot pile up handler goroutines forever.
func (i *Ingress) Start() error {
	topics := mqtt.Topics{}

	if err := i.client.Subscribe(topics.AllCommands(), i.qos, i.handleCommand); err != nil {
		return fmt.Errorf("subscribing to commands: %w", err)
	}

	if err := i.client.Subscribe(topics.Refresh(), i.qos, i.handleRefresh); err != nil {
		return fmt.Errorf("subscribing to refresh: %w", err)
	}

	i.logger.Info("ingress started",
		"commands", topics.AllCommands(),
		"refresh", topics.Refresh(),
	)
	return nil
}

// Stop removes the voice subscriptions.
func (i *Ingress) Stop() {
	topics := mqtt.Topics{}
	if err := i.client.Unsubscribe(topics.AllCommands()); err != nil {
		i.logger.Warn("unsubscribe failed", "topic", topics.AllCommands(), "error", err)
	}
	if err := i.client.Unsubscribe(topics.Refresh()); err != nil {
		i.logger.Warn("unsubscribe failed", "topic", topics.Refresh(), "error", err)
	}
}

// handleCommand processes one utterance message.
func (i *Ingress) handleCommand(topic string, payload []byte) error {
	source, ok := mqtt.Topics{}.CommandSource(topic)
	if !ok {
		return fmt.Errorf("unexpected command topic %q", topic)
	}

	text := parseText(payload)
	if text == "" {
		return fmt.Errorf("empty utterance from %s", source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	outcome, err := i.proc.HandleText(ctx, source, text)
	if err != nil {
		i.logger.Error("processing failed", "source", source, "error", err)
		i.publishResult(source, &assist.Outcome{Error: err.Error()})
		return err
	}

	i.publishResult(source, outcome)
	return nil
}

// handleRefresh forces a vocabulary rebuild.
func (i *Ingress) handleRefresh(_ string, _ []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := i.proc.Refresh(ctx); err != nil {
		i.logger.Error("refresh failed", "error", err)
		return err
	}
	return nil
}

// PublishVocabulary announces the current mapping on the retained
// vocabulary topic so satellites joining later still see it.
func (i *Ingress) PublishVocabulary(mapping *vocabulary.Mapping) {
	body, err := json.Marshal(mapping)
	if err != nil {
		i.logger.Error("marshalling vocabulary", "error", err)
		return
	}

	topic := mqtt.Topics{}.Vocabulary()
	if err := i.client.Publish(topic, body, i.qos, true); err != nil {
		i.logger.Warn("publishing vocabulary failed", "topic", topic, "error", err)
	}
}

// publishResult sends the outcome back on the source's result topic.
func (i *Ingress) publishResult(source string, outcome *assist.Outcome) {
	body, err := json.Marshal(resultPayload{Outcome: outcome, Source: source})
	if err != nil {
		i.logger.Error("marshalling result", "source", source, "error", err)
		return
	}

	topic := mqtt.Topics{}.Result(source)
	if err := i.client.Publish(topic, body, i.qos, false); err != nil {
		i.logger.Warn("publishing result failed", "topic", topic, "error", err)
	}
}

// parseText extracts the utterance from a payload. JSON bodies use the
// "text" field; anything else is treated as plain text.
func parseText(payload []byte) string {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		var body commandPayload
		if err := json.Unmarshal(payload, &body); err == nil {
			return strings.TrimSpace(body.Text)
		}
	}
	return trimmed
}
