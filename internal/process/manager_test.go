package process

import (
	"context"
	"testing"
	"time"
)

func TestNewManager_Defaults(t *testing.T) {
	cfg := Config{
		Name:   "llama-server",
		Binary: "/usr/local/bin/llama-server",
		Args:   []string{"-m", "home-3b-v2.q4.gguf"},
	}

	m := NewManager(cfg)

	if m.config.Name != "llama-server" {
		t.Errorf("Name = %q, want %q", m.config.Name, "llama-server")
	}
	if m.config.Binary != "/usr/local/bin/llama-server" {
		t.Errorf("Binary = %q, want %q", m.config.Binary, "/usr/local/bin/llama-server")
	}
	if m.config.RestartDelay != 5*time.Second {
		t.Errorf("RestartDelay = %v, want %v", m.config.RestartDelay, 5*time.Second)
	}
	if m.config.GracefulTimeout != 10*time.Second {
		t.Errorf("GracefulTimeout = %v, want %v", m.config.GracefulTimeout, 10*time.Second)
	}
	if m.config.HealthCheckInterval != 30*time.Second {
		t.Errorf("HealthCheckInterval = %v, want %v", m.config.HealthCheckInterval, 30*time.Second)
	}
}

func TestNewManager_CustomConfig(t *testing.T) {
	cfg := Config{
		Name:                "llama-server",
		Binary:              "/opt/llama/bin/server",
		Args:                []string{"--port", "8080", "-c", "2048"},
		RestartDelay:        10 * time.Second,
		GracefulTimeout:     30 * time.Second,
		HealthCheckInterval: 60 * time.Second,
		MaxRestartAttempts:  20,
	}

	m := NewManager(cfg)

	if m.config.RestartDelay != 10*time.Second {
		t.Errorf("RestartDelay = %v, want %v", m.config.RestartDelay, 10*time.Second)
	}
	if m.config.GracefulTimeout != 30*time.Second {
		t.Errorf("GracefulTimeout = %v, want %v", m.config.GracefulTimeout, 30*time.Second)
	}
	if m.config.MaxRestartAttempts != 20 {
		t.Errorf("MaxRestartAttempts = %d, want 20", m.config.MaxRestartAttempts)
	}
}

func TestDefaultConfig_Function(t *testing.T) {
	cfg := DefaultConfig("llama-server", "/usr/local/bin/llama-server", []string{"--port", "8080"})

	if cfg.Name != "llama-server" {
		t.Errorf("Name = %q, want %q", cfg.Name, "llama-server")
	}
	if cfg.Binary != "/usr/local/bin/llama-server" {
		t.Errorf("Binary = %q, want %q", cfg.Binary, "/usr/local/bin/llama-server")
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "--port" {
		t.Errorf("Args = %v, want [--port 8080]", cfg.Args)
	}
	if !cfg.RestartOnFailure {
		t.Error("RestartOnFailure = false, want true")
	}
	if cfg.MaxRestartAttempts != 10 {
		t.Errorf("MaxRestartAttempts = %d, want 10", cfg.MaxRestartAttempts)
	}
}

func TestManager_InitialState(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/true",
	})

	if m.Status() != StatusStopped {
		t.Errorf("initial Status() = %q, want %q", m.Status(), StatusStopped)
	}
	if m.IsRunning() {
		t.Error("IsRunning() = true, want false")
	}
	if m.PID() != 0 {
		t.Errorf("PID() = %d, want 0", m.PID())
	}
	if m.RestartCount() != 0 {
		t.Errorf("RestartCount() = %d, want 0", m.RestartCount())
	}
	if m.Uptime() != 0 {
		t.Errorf("Uptime() = %v, want 0", m.Uptime())
	}
	if m.LastError() != nil {
		t.Errorf("LastError() = %v, want nil", m.LastError())
	}
}

func TestManager_Stats(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/echo",
	})

	stats := m.Stats()
	if stats.Name != "llama-server" {
		t.Errorf("Stats.Name = %q, want %q", stats.Name, "llama-server")
	}
	if stats.Status != StatusStopped {
		t.Errorf("Stats.Status = %q, want %q", stats.Status, StatusStopped)
	}
	if stats.PID != 0 {
		t.Errorf("Stats.PID = %d, want 0", stats.PID)
	}
	if stats.RestartCount != 0 {
		t.Errorf("Stats.RestartCount = %d, want 0", stats.RestartCount)
	}
	if stats.LastError != "" {
		t.Errorf("Stats.LastError = %q, want empty", stats.LastError)
	}
}

func TestManager_StopWhenNotRunning(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/true",
	})

	// Stopping a non-running process should be a no-op
	if err := m.Stop(); err != nil {
		t.Errorf("Stop() on stopped process error = %v, want nil", err)
	}
}

func TestManager_StartAlreadyRunning(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/sleep",
		Args:   []string{"10"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("first Start() error: %v", err)
	}
	defer m.Stop()

	// Starting again should fail
	err := m.Start(ctx)
	if err == nil {
		t.Error("second Start() expected error, got nil")
	}
}

func TestManager_StartAndStop(t *testing.T) {
	m := NewManager(Config{
		Name:            "llama-server",
		Binary:          "/bin/sleep",
		Args:            []string{"60"},
		GracefulTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if !m.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}
	if m.PID() == 0 {
		t.Error("PID() = 0 after Start()")
	}
	if m.Status() != StatusRunning {
		t.Errorf("Status() = %q, want %q", m.Status(), StatusRunning)
	}

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	// Give the monitor goroutine time to update state
	time.Sleep(100 * time.Millisecond)

	if m.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
}

func TestManager_StartWithInvalidBinary(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/nonexistent/llama-server",
	})

	ctx := context.Background()
	err := m.Start(ctx)
	if err == nil {
		t.Fatal("Start() with invalid binary expected error, got nil")
	}

	if m.Status() != StatusFailed {
		t.Errorf("Status() = %q, want %q", m.Status(), StatusFailed)
	}
}

func TestManager_SetLogger(t *testing.T) {
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/true",
	})

	// Should not panic
	m.SetLogger(noopLogger{})
}

func TestManager_OnStartCallback(t *testing.T) {
	started := false
	m := NewManager(Config{
		Name:   "llama-server",
		Binary: "/bin/sleep",
		Args:   []string{"60"},
		OnStart: func() {
			started = true
		},
		GracefulTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer m.Stop()

	if !started {
		t.Error("OnStart callback was not called")
	}
}

func TestManager_OnStopCallbackAfterCrash(t *testing.T) {
	stopped := make(chan error, 1)
	m := NewManager(Config{
		Name:             "llama-server",
		Binary:           "/bin/false",
		RestartOnFailure: false,
		OnStop: func(err error) {
			stopped <- err
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	select {
	case err := <-stopped:
		if err == nil {
			t.Error("OnStop error = nil, want non-nil exit error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnStop was not called after process exit")
	}

	if m.Status() != StatusFailed {
		t.Errorf("Status() = %q, want %q", m.Status(), StatusFailed)
	}
	if m.LastError() == nil {
		t.Error("LastError() = nil after crash, want non-nil")
	}
}

func TestManager_RestartOnFailure(t *testing.T) {
	restarted := make(chan int, 1)
	m := NewManager(Config{
		Name:             "llama-server",
		Binary:           "/bin/false",
		RestartOnFailure: true,
		RestartDelay:     10 * time.Millisecond,
		OnRestart: func(attempt int) {
			select {
			case restarted <- attempt:
			default:
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	select {
	case attempt := <-restarted:
		if attempt < 1 {
			t.Errorf("OnRestart attempt = %d, want >= 1", attempt)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnRestart was not called after process failure")
	}

	cancel()
	time.Sleep(50 * time.Millisecond)

	if m.RestartCount() < 1 {
		t.Errorf("RestartCount() = %d, want >= 1", m.RestartCount())
	}
}
