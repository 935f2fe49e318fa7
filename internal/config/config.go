package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/trackd/internal/planner"
)

// Config holds the top-level trackd configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Ranking  RankingConfig  `toml:"ranking"`
}

type DatabaseConfig struct {
	// Path overrides the default database location under XDG_DATA_HOME.
	Path string `toml:"path"`
}

type LogConfig struct {
	// Path overrides the default log location under XDG_STATE_HOME.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type RankingConfig struct {
	WindowDays int `toml:"window_days"`
	Limit      int `toml:"limit"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	StateDir   string
	ConfigFile string
	DBFile     string
	LogFile    string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	trackdConfig := filepath.Join(configDir, "trackd")
	trackdData := filepath.Join(dataDir, "trackd")
	trackdState := filepath.Join(stateDir, "trackd")

	return Paths{
		ConfigDir:  trackdConfig,
		DataDir:    trackdData,
		StateDir:   trackdState,
		ConfigFile: filepath.Join(trackdConfig, "config.toml"),
		DBFile:     filepath.Join(trackdData, "trackd.db"),
		LogFile:    filepath.Join(trackdState, "trackd.log"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found, then
// applies TRACKD_* environment overrides on top.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig(paths)

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	fillDefaults(cfg, paths)
	return applyEnv(cfg), nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func defaultConfig(paths Paths) *Config {
	return &Config{
		Database: DatabaseConfig{Path: paths.DBFile},
		Log:      LogConfig{Path: paths.LogFile, Level: "info"},
		Ranking: RankingConfig{
			WindowDays: planner.DefaultWindowDays,
			Limit:      planner.DefaultLimit,
		},
	}
}

// fillDefaults backfills fields a partial config file left unset.
func fillDefaults(cfg *Config, paths Paths) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = paths.DBFile
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = paths.LogFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Ranking.WindowDays <= 0 {
		cfg.Ranking.WindowDays = planner.DefaultWindowDays
	}
	if cfg.Ranking.Limit <= 0 {
		cfg.Ranking.Limit = planner.DefaultLimit
	}
}

func applyEnv(cfg *Config) *Config {
	if v := strings.TrimSpace(os.Getenv("TRACKD_DB_PATH")); v != "" {
		cfg.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("TRACKD_LOG_PATH")); v != "" {
		cfg.Log.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("TRACKD_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v, ok := getEnvInt("TRACKD_RANK_WINDOW_DAYS"); ok && v > 0 {
		cfg.Ranking.WindowDays = v
	}
	if v, ok := getEnvInt("TRACKD_RANK_LIMIT"); ok && v > 0 {
		cfg.Ranking.Limit = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
