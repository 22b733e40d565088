// Package assist orchestrates the voice command pipeline.
//
// It owns the end-to-end flow:
//
//	hub discovery dump -> vocabulary -> GBNF grammar -> engine completion
//	-> command extraction -> location normalization -> grammar validation
//
// The Service holds the current vocabulary snapshot behind a read lock.
// Refresh rebuilds the snapshot from a fresh hub dump; command handling
// reads whatever snapshot is current. A refresh never blocks in-flight
// commands for longer than a pointer swap.
package assist
