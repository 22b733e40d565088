package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCommandMetric records the outcome of a single processed utterance.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - source: Ingress source ("api", "mqtt")
//   - device: Extracted device type, empty if extraction failed
//   - action: Extracted action, empty if extraction failed
//   - valid: Whether the command passed grammar validation
//   - duration: End-to-end processing time
func (c *Client) WriteCommandMetric(source, device, action string, valid bool, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	validField := 0
	if valid {
		validField = 1
	}

	tags := map[string]string{
		"source": source,
	}
	if device != "" {
		tags["device"] = device
	}
	if action != "" {
		tags["action"] = action
	}

	point := write.NewPoint(
		"voice_commands",
		tags,
		map[string]interface{}{
			"valid":       validField,
			"duration_ms": duration.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRefreshMetric records a vocabulary refresh cycle.
//
// Parameters:
//   - entityCount: Number of entities discovered from the hub
//   - locationCount: Number of distinct locations resolved
//   - duration: Time taken to rebuild the vocabulary and grammar
func (c *Client) WriteRefreshMetric(entityCount, locationCount int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"vocabulary_refresh",
		nil,
		map[string]interface{}{
			"entities":    entityCount,
			"locations":   locationCount,
			"duration_ms": duration.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteEngineMetric records a generation engine request.
//
// Parameters:
//   - status: Request outcome ("ok", "error", "timeout")
//   - tokens: Generated token count, 0 if unknown
//   - duration: Round-trip time for the completion request
func (c *Client) WriteEngineMetric(status string, tokens int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"engine_requests",
		map[string]string{
			"status": status,
		},
		map[string]interface{}{
			"tokens":      tokens,
			"duration_ms": duration.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
