package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultConfigFileName = "config.toml"

var (
	DefaultConfigDir      = os.ExpandEnv("$HOME/.config/opsbook")
	DefaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)

	DefaultDataDir = os.ExpandEnv("$HOME/.local/share/opsbook")
)

type Config struct {
	// StorePath is the bolt database holding saved runbooks.
	StorePath string `toml:"store_path"`
	// LogPath is the run transcript appended to by execute mode.
	LogPath string `toml:"log_path"`
	// Shell overrides shell detection for interactive runs.
	Shell string `toml:"shell,omitempty"`
}

func defaults() *Config {
	return &Config{
		StorePath: filepath.Join(DefaultDataDir, "opsbook.db"),
		LogPath:   filepath.Join(DefaultDataDir, "run.log"),
	}
}

// Load reads the config file, falling back to defaults when the file is
// missing. Keys absent from the file keep their default value.
func Load() (*Config, error) {
	return loadFromFile(DefaultConfigFilePath)
}

func loadFromFile(path string) (*Config, error) {
	cfg := defaults()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if meta.IsDefined("store_path") {
		cfg.StorePath = raw.StorePath
	}
	if meta.IsDefined("log_path") {
		cfg.LogPath = raw.LogPath
	}
	if meta.IsDefined("shell") {
		cfg.Shell = raw.Shell
	}
	return cfg, nil
}

// version is set via ldflags at build time.
var version = "dev"

func Version() string {
	return version
}
