package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-voice/internal/process"
)

// Supervisor manages the engine server as a child process.
//
// It is only used when engine.supervisor.managed is true; otherwise the
// server is expected to run externally and the Supervisor is not created.
type Supervisor struct {
	manager *process.Manager
	logger  *logging.Logger
}

// NewSupervisor creates a supervisor for the engine server process.
//
// The client is used for health checks so a hung server (process alive,
// endpoint dead) gets detected and restarted.
func NewSupervisor(cfg config.EngineConfig, client *Client, logger *logging.Logger) *Supervisor {
	sup := cfg.Supervisor

	args := []string{
		"--model", sup.ModelPath,
		"--ctx-size", strconv.Itoa(sup.ContextSize),
	}
	args = append(args, sup.Args...)

	procCfg := process.DefaultConfig("engine-server", sup.Binary, args)
	procCfg.RestartOnFailure = sup.RestartOnFailure
	procCfg.MaxRestartAttempts = sup.MaxRestartAttempts
	if sup.RestartDelaySeconds > 0 {
		procCfg.RestartDelay = time.Duration(sup.RestartDelaySeconds) * time.Second
	}
	procCfg.HealthCheckFunc = client.HealthCheck

	log := logger.With("component", "engine-supervisor")
	procCfg.OnStart = func() {
		log.Info("engine server started")
	}
	procCfg.OnStop = func(err error) {
		if err != nil {
			log.Warn("engine server stopped", "error", err)
		}
	}
	procCfg.OnRestart = func(attempt int) {
		log.Info("restarting engine server", "attempt", attempt)
	}

	mgr := process.NewManager(procCfg)
	mgr.SetLogger(log)

	return &Supervisor{
		manager: mgr,
		logger:  log,
	}
}

// Start launches the engine server and waits for it to become healthy.
//
// The engine can take a while to load model weights, so readiness is
// polled rather than assumed from process start.
func (s *Supervisor) Start(ctx context.Context, client *Client) error {
	if err := s.manager.Start(ctx); err != nil {
		return err
	}

	// Poll until the server answers health checks or the context expires.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := client.HealthCheck(checkCtx)
			cancel()
			if err == nil {
				s.logger.Info("engine server ready")
				return nil
			}
		}
	}
}

// Stop gracefully stops the engine server.
func (s *Supervisor) Stop() error {
	return s.manager.Stop()
}

// Stats returns process statistics for the managed engine server.
func (s *Supervisor) Stats() process.Stats {
	return s.manager.Stats()
}

// IsRunning reports whether the engine server process is running.
func (s *Supervisor) IsRunning() bool {
	return s.manager.IsRunning()
}
