// Package config loads the dockhand server configuration from a YAML file
// with environment overrides. A missing file is created with defaults on
// first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dockhand/pkg/logger"
)

type Config struct {
	General         GeneralConfig         `yaml:"General"`
	Http            HttpConfig            `yaml:"Http"`
	Admin           AdminConfig           `yaml:"Admin"`
	ContainerEngine ContainerEngineConfig `yaml:"ContainerEngine"`
	Agent           AgentConfig           `yaml:"Agent"`
	Build           BuildConfig           `yaml:"-"`
}

type GeneralConfig struct {
	StorageDir string `yaml:"storageDir"`
	LogLevel   string `yaml:"logLevel"`
}

type HttpConfig struct {
	Port   int    `yaml:"port"`
	Domain string `yaml:"domain"`
}

type AdminConfig struct {
	Path          string `yaml:"path"`
	SessionSecret string `yaml:"sessionSecret"`
	PasswordHash  string `yaml:"passwordHash"`
}

type ContainerEngineConfig struct {
	Sock    string `yaml:"dockersock"`
	Network string `yaml:"network"`
}

type AgentConfig struct {
	Secret         string `yaml:"secret"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type BuildConfig struct {
	Version string `yaml:"-"`
	Commit  string `yaml:"-"`
	Date    string `yaml:"-"`
}

// Default values
var (
	defaultSock      = "/var/run/docker.sock"
	defaultNetwork   = "dockhand"
	defaultPort      = 8686
	defaultAdminPath = "/admin"
	defaultLogLevel  = "info"
	defaultTimeout   = 10 // seconds
)

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "dockhand")
	}
	return ".dockhand"
}

// applyDefaults fills zero-valued fields and reports whether anything changed.
func applyDefaults(c *Config) bool {
	applied := false

	if c.General.StorageDir == "" {
		c.General.StorageDir = defaultStorageDir()
		applied = true
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = defaultLogLevel
		applied = true
	}
	if c.Http.Port == 0 {
		c.Http.Port = defaultPort
		applied = true
	}
	if c.Admin.Path == "" {
		c.Admin.Path = defaultAdminPath
		applied = true
	}
	if c.ContainerEngine.Sock == "" {
		c.ContainerEngine.Sock = defaultSock
		applied = true
	}
	if c.ContainerEngine.Network == "" {
		c.ContainerEngine.Network = defaultNetwork
		applied = true
	}
	if c.Agent.TimeoutSeconds == 0 {
		c.Agent.TimeoutSeconds = defaultTimeout
		applied = true
	}

	return applied
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("DOCKHAND_STORAGE_DIR"); v != "" {
		c.General.StorageDir = v
	}
	if v := os.Getenv("DOCKHAND_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("DOCKHAND_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Http.Port = port
		} else {
			logger.Warn("Ignoring invalid DOCKHAND_HTTP_PORT", "value", v)
		}
	}
	if v := os.Getenv("DOCKHAND_DOCKER_SOCK"); v != "" {
		c.ContainerEngine.Sock = v
	}
	if v := os.Getenv("DOCKHAND_SESSION_SECRET"); v != "" {
		c.Admin.SessionSecret = v
	}
	if v := os.Getenv("DOCKHAND_AGENT_SECRET"); v != "" {
		c.Agent.Secret = v
	}
}

// Path returns the configuration file location, honoring DOCKHAND_CONFIG.
func Path() string {
	if v := os.Getenv("DOCKHAND_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(defaultStorageDir(), "config.yml")
}

// Load reads the config file at path, creating it with defaults when absent.
func Load(path string) (*Config, error) {
	// A .env next to the working directory is optional.
	_ = godotenv.Load()

	c := &Config{}

	data, err := os.ReadFile(path)
	created := false
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, c); uerr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, uerr)
		}
	case os.IsNotExist(err):
		logger.Info("No config file found, creating one with defaults", "path", path)
		created = true
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if applyDefaults(c) || created {
		if werr := c.Save(path); werr != nil {
			return nil, werr
		}
	}

	applyEnvOverrides(c)
	logger.GetLogger().SetLogLevel(c.General.LogLevel)

	return c, nil
}

// Save writes the config back to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DBPath returns the sqlite database location under the storage dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.General.StorageDir, "db", "dockhand.db")
}

// KVDir returns the starskey key-value store directory.
func (c *Config) KVDir() string {
	return filepath.Join(c.General.StorageDir, "kv")
}
