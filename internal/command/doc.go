// Package command recovers structured smart-home commands from raw
// generation-engine output.
//
// Extraction is a two-strategy fallback chain: first every balanced-brace
// substring is tried as a JSON object against the command schema, in order
// of appearance; only when none parses do per-field regular expressions
// scrape device/location/action/value out of the raw text. Device and action
// are mandatory; location and value are optional.
//
// Engine output is adversarial input. Extraction failure is reported as nil,
// never as an error or panic; the caller decides whether to retry
// generation or tell the user the command was not understood.
package command
