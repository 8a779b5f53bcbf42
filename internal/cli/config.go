package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration options.
type Config struct {
	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty"`

	// SamplesFile, if set, receives a copy of the sample lines. It is
	// written atomically after sampling finishes.
	SamplesFile string `json:"samples_file,omitempty"`

	// PinCPU, if set, pins the sampling thread to this CPU.
	PinCPU *int `json:"pin_cpu,omitempty"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to the -c/--config file if given, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
	}
}

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "RXBENCH_LOG"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/rxbench/config.json if set, otherwise ~/.config/rxbench/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "rxbench", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "rxbench", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	ConfigPath string            // -c/--config flag value
	Env        map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/rxbench/config.json or $XDG_CONFIG_HOME/rxbench/config.json)
// 3. Explicit config file via ConfigPath (if non-empty, must exist)
// 4. Environment ($RXBENCH_LOG).
func LoadConfig(input LoadConfigInput) (Config, error) {
	cfg := DefaultConfig()

	if globalPath := getGlobalConfigPath(input.Env); globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	if input.ConfigPath != "" {
		_, statErr := os.Stat(input.ConfigPath)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, input.ConfigPath)
		}

		explicitCfg, _, err := loadConfigFile(input.ConfigPath, true)
		if err != nil {
			return Config{}, err
		}

		cfg.Sources.Explicit = input.ConfigPath
		cfg = mergeConfig(cfg, explicitCfg)
	}

	if level := input.Env[EnvLogLevel]; level != "" {
		cfg.LogLevel = level
	}

	err := validateConfig(cfg)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.SamplesFile != "" {
		base.SamplesFile = overlay.SamplesFile
	}

	if overlay.PinCPU != nil {
		base.PinCPU = overlay.PinCPU
	}

	return base
}

func validateConfig(cfg Config) error {
	_, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w %q", ErrConfigInvalid, ErrLogLevelInvalid, cfg.LogLevel)
	}

	if cfg.PinCPU != nil && *cfg.PinCPU < 0 {
		return fmt.Errorf("%w: %w (got %d)", ErrConfigInvalid, ErrPinCPUInvalid, *cfg.PinCPU)
	}

	return nil
}
