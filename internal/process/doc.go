// Package process provides generic subprocess lifecycle management.
//
// This package is designed for managing long-running child processes like
// the local generation engine server that Gray Logic Voice depends on.
//
// Features:
//   - Start/stop subprocess with graceful shutdown
//   - Automatic restart on failure with a configurable delay
//   - Health monitoring and status reporting
//   - Log capture from subprocess stdout/stderr
//   - Context-based cancellation for clean shutdown
//
// Example usage:
//
//	mgr := process.NewManager(process.Config{
//	    Name:              "llama-server",
//	    Binary:            "/usr/local/bin/llama-server",
//	    Args:              []string{"--model", "/models/command.gguf"},
//	    RestartOnFailure:  true,
//	    RestartDelay:      5 * time.Second,
//	    MaxRestartAttempts: 10,
//	})
//
//	if err := mgr.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Stop()
package process
