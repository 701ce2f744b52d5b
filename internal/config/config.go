package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultBoardKey = "kanban-board"

	ViewBoard = "board"
	ViewList  = "list"
)

// Config holds the unified application configuration
type Config struct {
	DataDir     string `json:"data_dir"`
	Backend     string `json:"backend"`
	BoardKey    string `json:"board_key"`
	DefaultView string `json:"default_view"`
	Watch       bool   `json:"watch"`
}

// Settings is one layer of configuration as read from the config file or
// the environment. Zero values leave the lower layer in place.
type Settings struct {
	DataDir     string `json:"data_dir,omitempty"`
	Backend     string `json:"backend,omitempty"`
	BoardKey    string `json:"board_key,omitempty"`
	DefaultView string `json:"default_view,omitempty"`
	Watch       *bool  `json:"watch,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir  string
	Backend  string
	BoardKey string
}

// Load resolves the configuration. Each layer overrides the one before:
// defaults, the config file, KANBAN_* env vars, then CLI flags.
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:     BackendFile,
		BoardKey:    DefaultBoardKey,
		DefaultView: ViewBoard,
		Watch:       true,
	}

	if path, err := getConfigPath(); err == nil {
		if file, err := loadConfigFile(path); err == nil {
			cfg.merge(*file)
		}
	}
	cfg.merge(envSettings())
	cfg.merge(Settings{DataDir: flags.DataDir, Backend: flags.Backend, BoardKey: flags.BoardKey})

	if cfg.DataDir == "" {
		dir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies the fields s sets onto c
func (c *Config) merge(s Settings) {
	if s.DataDir != "" {
		c.DataDir = expandPath(s.DataDir)
	}
	if s.Backend != "" {
		c.Backend = s.Backend
	}
	if s.BoardKey != "" {
		c.BoardKey = s.BoardKey
	}
	if s.DefaultView != "" {
		c.DefaultView = s.DefaultView
	}
	if s.Watch != nil {
		c.Watch = *s.Watch
	}
}

// envSettings reads the KANBAN_* variables. An unparsable KANBAN_WATCH is
// ignored.
func envSettings() Settings {
	s := Settings{
		DataDir:  os.Getenv("KANBAN_DATA_DIR"),
		Backend:  os.Getenv("KANBAN_BACKEND"),
		BoardKey: os.Getenv("KANBAN_BOARD_KEY"),
	}
	if v := os.Getenv("KANBAN_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Watch = &b
		}
	}
	return s
}

// Validate rejects unknown backends and views, and unusable keys
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	switch c.DefaultView {
	case "", ViewBoard, ViewList:
	default:
		return fmt.Errorf("unknown default view %q (want %s or %s)", c.DefaultView, ViewBoard, ViewList)
	}
	if strings.TrimSpace(c.BoardKey) == "" {
		return fmt.Errorf("board key cannot be empty")
	}
	if strings.ContainsAny(c.BoardKey, `/\`) {
		return fmt.Errorf("board key %q cannot contain path separators", c.BoardKey)
	}
	return nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "kanban"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kanban", "config.json"), nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

// EnsureDataDir ensures the data directory exists
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// SQLitePath returns the database file used by the sqlite backend
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "kanban.db")
}

// EnsureConfigFile writes a config file holding the defaults unless one
// already exists.
func EnsureConfigFile() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	dataDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	watch := true
	data, err := json.MarshalIndent(Settings{
		DataDir:     dataDir,
		Backend:     BackendFile,
		BoardKey:    DefaultBoardKey,
		DefaultView: ViewBoard,
		Watch:       &watch,
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// expandPath resolves a leading ~/ against the home directory
func expandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
