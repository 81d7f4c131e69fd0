package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"todo/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultStorageKey     = "todo-full-v2"
	appDirName            = "todo"
)

type Keymap struct {
	Quit        string `toml:"quit"`
	Add         string `toml:"add"`
	Up          string `toml:"up"`
	Down        string `toml:"down"`
	Toggle      string `toml:"toggle"`
	Delete      string `toml:"delete"`
	Confirm     string `toml:"confirm"`
	Cancel      string `toml:"cancel"`
	Edit        string `toml:"edit"`
	Move        string `toml:"move"`
	Undo        string `toml:"undo"`
	DismissUndo string `toml:"dismiss_undo"`
	ClearDone   string `toml:"clear_done"`
	ToggleList  string `toml:"toggle_list"`
	FilterAll   string `toml:"filter_all"`
	FilterOpen  string `toml:"filter_active"`
	FilterDone  string `toml:"filter_done"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	DefaultFilter string `toml:"default_filter"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	ErrorHideMS   int    `toml:"error_hide_ms"`
	UndoWindowMS  int    `toml:"undo_window_ms"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file, or a file in the
// working directory when no user config dir is known.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	if c.ErrorHideMS <= 0 {
		return errors.New("error_hide_ms must be positive")
	}
	if c.UndoWindowMS <= 0 {
		return errors.New("undo_window_ms must be positive")
	}
	return nil
}

func (c Config) Filter() todo.Filter {
	f, _ := todo.ParseFilter(c.DefaultFilter)
	return f
}

func (c Config) ErrorHideDelay() time.Duration {
	return time.Duration(c.ErrorHideMS) * time.Millisecond
}

func (c Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoWindowMS) * time.Millisecond
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.DefaultFilter == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ErrorHideMS == 0 {
		c.ErrorHideMS = def.ErrorHideMS
	}
	if c.UndoWindowMS == 0 {
		c.UndoWindowMS = def.UndoWindowMS
	}
	c.Keys.fillDefaults(def.Keys)
}

func (k *Keymap) fillDefaults(def Keymap) {
	fields := []struct {
		dst *string
		src string
	}{
		{&k.Quit, def.Quit},
		{&k.Add, def.Add},
		{&k.Up, def.Up},
		{&k.Down, def.Down},
		{&k.Toggle, def.Toggle},
		{&k.Delete, def.Delete},
		{&k.Confirm, def.Confirm},
		{&k.Cancel, def.Cancel},
		{&k.Edit, def.Edit},
		{&k.Move, def.Move},
		{&k.Undo, def.Undo},
		{&k.DismissUndo, def.DismissUndo},
		{&k.ClearDone, def.ClearDone},
		{&k.ToggleList, def.ToggleList},
		{&k.FilterAll, def.FilterAll},
		{&k.FilterOpen, def.FilterOpen},
		{&k.FilterDone, def.FilterDone},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

// resolve anchors relative file paths at the config directory.
func (c Config) resolve(dir string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		StorageKey:    DefaultStorageKey,
		DefaultFilter: "all",
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		ErrorHideMS:   2500,
		UndoWindowMS:  5000,
		Keys: Keymap{
			Quit:        "q",
			Add:         "a",
			Up:          "k",
			Down:        "j",
			Toggle:      " ",
			Delete:      "d",
			Confirm:     "enter",
			Cancel:      "esc",
			Edit:        "e",
			Move:        "m",
			Undo:        "u",
			DismissUndo: "x",
			ClearDone:   "c",
			ToggleList:  "v",
			FilterAll:   "1",
			FilterOpen:  "2",
			FilterDone:  "3",
		},
	}
}
