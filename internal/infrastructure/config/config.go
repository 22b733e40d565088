package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Gray Logic Voice.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Hub      HubConfig      `yaml:"hub"`
	Engine   EngineConfig   `yaml:"engine"`
	API      APIConfig      `yaml:"api"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Database DatabaseConfig `yaml:"database"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HubConfig contains the automation hub connection settings.
type HubConfig struct {
	// URL is the hub's WebSocket API endpoint
	// (e.g. "ws://homeassistant.local:8123/api/websocket").
	URL string `yaml:"url"`

	// Token is the long-lived access token for the hub API.
	Token string `yaml:"token"`

	// CommandTimeout is the per-command response timeout (seconds).
	CommandTimeout int `yaml:"command_timeout"`

	// RefreshInterval is how often the discovery dump and vocabulary are
	// rebuilt (seconds). 0 disables periodic refresh; a refresh can always
	// be forced through the API.
	RefreshInterval int `yaml:"refresh_interval"`
}

// EngineConfig contains the generation engine settings.
type EngineConfig struct {
	// URL is the llama.cpp-compatible completion server endpoint
	// (e.g. "http://127.0.0.1:8089").
	URL string `yaml:"url"`

	// Timeout is the completion request timeout (seconds). Generation on
	// modest hardware can take a while; default is generous.
	Timeout int `yaml:"timeout"`

	// MaxTokens caps the generated token count per completion.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls sampling randomness. Commands want near-greedy.
	Temperature float64 `yaml:"temperature"`

	// Supervisor configures optional lifecycle management of the engine
	// process itself.
	Supervisor SupervisorConfig `yaml:"supervisor"`
}

// SupervisorConfig contains settings for managing the engine server process.
type SupervisorConfig struct {
	// Managed indicates whether Gray Logic Voice should launch and babysit
	// the engine server. If false, the engine is expected to be running
	// externally (e.g. as a systemd service).
	Managed bool `yaml:"managed"`

	// Binary is the path to the engine server executable.
	Binary string `yaml:"binary"`

	// ModelPath is the path to the model weights file.
	ModelPath string `yaml:"model_path"`

	// Args are extra command-line arguments passed verbatim.
	Args []string `yaml:"args"`

	// ContextSize is the engine context window in tokens.
	ContextSize int `yaml:"context_size"`

	// RestartOnFailure enables automatic restart if the engine crashes.
	RestartOnFailure bool `yaml:"restart_on_failure"`

	// RestartDelaySeconds is the time to wait before restarting.
	RestartDelaySeconds int `yaml:"restart_delay_seconds"`

	// MaxRestartAttempts limits restart attempts. 0 means unlimited.
	MaxRestartAttempts int `yaml:"max_restart_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// MQTTConfig contains MQTT voice-ingress settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// DatabaseConfig contains SQLite database settings for the command audit
// trail.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// InfluxDBConfig contains InfluxDB connection settings for command
// telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYLOGIC_VOICE_SECTION_KEY
// For example: GRAYLOGIC_VOICE_HUB_TOKEN, GRAYLOGIC_VOICE_API_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Hub: HubConfig{
			URL:             "ws://localhost:8123/api/websocket",
			CommandTimeout:  15,
			RefreshInterval: 300,
		},
		Engine: EngineConfig{
			URL:         "http://127.0.0.1:8089",
			Timeout:     60,
			MaxTokens:   128,
			Temperature: 0.1,
			Supervisor: SupervisorConfig{
				ContextSize:         2048,
				RestartOnFailure:    true,
				RestartDelaySeconds: 5,
				MaxRestartAttempts:  10,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8098,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 120, // completions are slow; don't cut them off
				Idle:  60,
			},
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "graylogic-voice",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/graylogic-voice.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYLOGIC_VOICE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Hub
	if v := os.Getenv("GRAYLOGIC_VOICE_HUB_URL"); v != "" {
		cfg.Hub.URL = v
	}
	if v := os.Getenv("GRAYLOGIC_VOICE_HUB_TOKEN"); v != "" {
		cfg.Hub.Token = v
	}

	// Engine
	if v := os.Getenv("GRAYLOGIC_VOICE_ENGINE_URL"); v != "" {
		cfg.Engine.URL = v
	}

	// API
	if v := os.Getenv("GRAYLOGIC_VOICE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_VOICE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// MQTT
	if v := os.Getenv("GRAYLOGIC_VOICE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_VOICE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_VOICE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Database
	if v := os.Getenv("GRAYLOGIC_VOICE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// InfluxDB
	if v := os.Getenv("GRAYLOGIC_VOICE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Hub.URL == "" {
		errs = append(errs, "hub.url is required")
	} else if !strings.HasPrefix(c.Hub.URL, "ws://") && !strings.HasPrefix(c.Hub.URL, "wss://") {
		errs = append(errs, "hub.url must be a ws:// or wss:// URL")
	}

	if c.Engine.URL == "" {
		errs = append(errs, "engine.url is required")
	}
	if c.Engine.Temperature < 0 || c.Engine.Temperature > 2 {
		errs = append(errs, "engine.temperature must be between 0 and 2")
	}
	if c.Engine.Supervisor.Managed {
		if c.Engine.Supervisor.Binary == "" {
			errs = append(errs, "engine.supervisor.binary is required when managed")
		}
		if c.Engine.Supervisor.ModelPath == "" {
			errs = append(errs, "engine.supervisor.model_path is required when managed")
		}
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.MQTT.Enabled {
		if c.MQTT.Broker.Host == "" {
			errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1, or 2")
		}
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.org and influxdb.bucket are required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GetCommandTimeout returns the hub command timeout as a Duration.
func (c HubConfig) GetCommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeout) * time.Second
}

// GetRefreshInterval returns the vocabulary refresh interval as a Duration.
func (c HubConfig) GetRefreshInterval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

// GetTimeout returns the completion request timeout as a Duration.
func (c EngineConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
