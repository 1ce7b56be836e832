// Package config resolves runtime settings: compiled defaults, then an
// optional config.yaml in the data directory, then GLINT_* environment
// variables (a .env file next to the working directory is honored).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/glintapp/glint/pkg/store"
)

// Config holds the widget's tunables.
type Config struct {
	DataDir             string        `yaml:"data_dir"`
	PollInterval        time.Duration `yaml:"poll_interval"`
	SnoozeDuration      time.Duration `yaml:"snooze_duration"`
	NotificationTimeout time.Duration `yaml:"notification_timeout"`
	SoundRepeat         time.Duration `yaml:"sound_repeat"`
	SoundPath           string        `yaml:"sound_path"`
	Debug               bool          `yaml:"debug"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		DataDir:             store.DefaultDataDir(),
		PollInterval:        time.Second,
		SnoozeDuration:      5 * time.Minute,
		NotificationTimeout: 2 * time.Minute,
		SoundRepeat:         2 * time.Second,
	}
}

// Load resolves the configuration. dataDir overrides the data directory
// when non-empty (CLI --dir flag); otherwise GLINT_DIR and the OS default
// apply. A malformed config.yaml is an error; a missing one is not.
func Load(dataDir string) (Config, error) {
	godotenv.Load() // best effort; absence is normal

	cfg := Default()
	if dataDir == "" {
		dataDir = os.Getenv("GLINT_DIR")
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	path := filepath.Join(cfg.DataDir, "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
		// The file must not relocate the directory it was found in.
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.PollInterval = getEnvDuration("GLINT_POLL_INTERVAL", cfg.PollInterval)
	cfg.SnoozeDuration = getEnvDuration("GLINT_SNOOZE_DURATION", cfg.SnoozeDuration)
	cfg.NotificationTimeout = getEnvDuration("GLINT_NOTIFICATION_TIMEOUT", cfg.NotificationTimeout)
	cfg.SoundRepeat = getEnvDuration("GLINT_SOUND_REPEAT", cfg.SoundRepeat)
	cfg.SoundPath = getEnv("GLINT_SOUND", cfg.SoundPath)
	cfg.Debug = getEnvBool("GLINT_DEBUG", cfg.Debug)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
