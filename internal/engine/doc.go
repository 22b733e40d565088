// Package engine provides the client and supervisor for the local
// generation engine (a llama.cpp-compatible completion server).
//
// The engine turns a natural-language utterance into a structured command
// under a GBNF grammar constraint. This package handles:
//   - Completion requests against the /completion endpoint
//   - Health checks against /health
//   - Optional lifecycle management of the engine server process
//
// The engine is treated as an unreliable dependency. Requests carry
// timeouts, and when the supervisor is enabled a crashed server is
// restarted with backoff.
package engine
