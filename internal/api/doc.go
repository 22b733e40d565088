// Package api implements the HTTP REST API for Gray Logic Voice.
//
// This package provides:
//   - A command endpoint that runs text through the normalization pipeline
//   - Read endpoints for the current vocabulary, grammar, and combinations
//   - A refresh endpoint to rebuild the vocabulary from the hub
//   - Audit endpoints for the command history
//   - Middleware stack (request ID, logging, recovery, CORS)
//
// # Architecture
//
// The API server sits between user interfaces (web admin, integrations,
// test harnesses) and the assist pipeline. Commands submitted over HTTP
// run through the same pipeline as commands arriving over MQTT, so both
// ingress paths produce identical outcomes and audit records.
//
// # Graceful Degradation
//
// The server operates while the pipeline is still warming up. Command
// requests return 503 until the first vocabulary refresh completes;
// health and audit endpoints remain available throughout.
package api
