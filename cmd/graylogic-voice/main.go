// Gray Logic Voice - Semantic Normalization Pipeline
//
// This is the main entry point for the Gray Logic Voice service.
// It turns free-form spoken or typed commands into structured smart-home
// commands by constraining a local language model with a grammar built
// from the hub's live entity registry:
//   - Discovers entities and areas from the automation hub
//   - Builds a vocabulary and GBNF grammar per discovery cycle
//   - Runs utterances through a grammar-constrained inference engine
//   - Serves commands over HTTP and MQTT
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/nerrad567/gray-logic-voice/migrations"

	"github.com/nerrad567/gray-logic-voice/internal/api"
	"github.com/nerrad567/gray-logic-voice/internal/assist"
	"github.com/nerrad567/gray-logic-voice/internal/audit"
	"github.com/nerrad567/gray-logic-voice/internal/engine"
	"github.com/nerrad567/gray-logic-voice/internal/hub"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/telemetry"
	"github.com/nerrad567/gray-logic-voice/internal/ingress"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic Voice",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Connect to InfluxDB (optional)
	var telemetryClient *telemetry.Client
	if cfg.InfluxDB.Enabled {
		telemetryClient, err = telemetry.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := telemetryClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		telemetryClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Create engine client, optionally supervising the server process
	engineClient := engine.NewClient(cfg.Engine, log)

	if cfg.Engine.Supervisor.Managed {
		supervisor := engine.NewSupervisor(cfg.Engine, engineClient, log)
		log.Info("starting engine server",
			"binary", cfg.Engine.Supervisor.Binary,
			"model", cfg.Engine.Supervisor.ModelPath,
		)
		if startErr := supervisor.Start(ctx, engineClient); startErr != nil {
			return fmt.Errorf("starting engine server: %w", startErr)
		}
		defer func() {
			log.Info("stopping engine server")
			if stopErr := supervisor.Stop(); stopErr != nil {
				log.Error("error stopping engine server", "error", stopErr)
			}
		}()
	} else {
		log.Info("engine server unmanaged", "url", cfg.Engine.URL)
	}

	// Hub connection, re-dialled per fetch when the connection drops
	hubSource := &reconnectingHubSource{cfg: cfg.Hub, log: log}
	defer hubSource.Close()

	// Assemble the pipeline
	var metrics assist.Metrics
	if telemetryClient != nil {
		metrics = telemetryClient
	}
	service := assist.NewService(hubSource, engineClient, auditRepo, metrics, log)

	// Initial vocabulary build. A hub outage at startup is tolerated;
	// the periodic refresh keeps retrying.
	if refreshErr := service.Refresh(ctx); refreshErr != nil {
		log.Warn("initial vocabulary refresh failed, will retry", "error", refreshErr)
	} else {
		log.Info("vocabulary ready", "last_refresh", service.LastRefresh())
	}

	go service.RunPeriodicRefresh(ctx, cfg.Hub.GetRefreshInterval())

	// MQTT ingress (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		ing := ingress.New(mqttClient, service, byte(cfg.MQTT.QoS), log)
		if startErr := ing.Start(); startErr != nil {
			return fmt.Errorf("starting MQTT ingress: %w", startErr)
		}
		defer ing.Stop()

		// Announce the vocabulary after every refresh, and immediately
		// if one is already built.
		service.SetOnRefresh(ing.PublishVocabulary)
		if mapping, mapErr := service.Mapping(); mapErr == nil {
			ing.PublishVocabulary(mapping)
		}
	} else {
		log.Info("MQTT ingress disabled")
	}

	// Start HTTP API
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Logger:    log,
		Pipeline:  service,
		AuditRepo: auditRepo,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Gray Logic Voice stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses GRAYLOGIC_VOICE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_VOICE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// reconnectingHubSource adapts hub.Connect to assist.DumpSource with
// re-dial on failure. The hub client holds one WebSocket; if it drops
// between refreshes the next fetch dials a fresh connection.
type reconnectingHubSource struct {
	cfg config.HubConfig
	log *logging.Logger

	mu     sync.Mutex
	client *hub.Client
}

// FetchDump fetches a discovery dump, dialling the hub if needed. A
// failed fetch discards the connection so the next call starts clean.
func (s *reconnectingHubSource) FetchDump(ctx context.Context) (*hub.Dump, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		client, err := hub.Connect(ctx, s.cfg, s.log)
		if err != nil {
			return nil, err
		}
		s.client = client
	}

	dump, err := s.client.FetchDump(ctx)
	if err != nil {
		s.client.Close()
		s.client = nil
		return nil, err
	}
	return dump, nil
}

// Close shuts down the current hub connection, if any.
func (s *reconnectingHubSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

var _ assist.DumpSource = (*reconnectingHubSource)(nil)
