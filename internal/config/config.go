package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/midbel/sheetcalc/format"
	"github.com/midbel/sheetcalc/internal/ds"
)

const (
	BackendNative = "native"
	BackendExpr   = "expr"
)

var ErrOption = errors.New("invalid option")

type EngineOptions struct {
	Backend string `toml:"backend"`
}

type LogOptions struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type DisplayOptions struct {
	Number string `toml:"number"`
}

type Config struct {
	Engine  EngineOptions  `toml:"engine"`
	Log     LogOptions     `toml:"log"`
	Display DisplayOptions `toml:"display"`
}

func Default() Config {
	return Config{
		Engine: EngineOptions{
			Backend: BackendNative,
		},
		Log: LogOptions{
			Level: "warn",
		},
		Display: DisplayOptions{
			Number: format.DefaultNumberPattern,
		},
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// means the file in the configuration directory, which may not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if userCfg.Engine.Backend != "" {
		cfg.Engine.Backend = userCfg.Engine.Backend
	}
	if userCfg.Log.Level != "" {
		cfg.Log.Level = userCfg.Log.Level
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}
	if userCfg.Display.Number != "" {
		cfg.Display.Number = userCfg.Display.Number
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Engine.Backend {
	case BackendNative, BackendExpr:
	default:
		return fmt.Errorf("engine.backend: %s: %w", c.Engine.Backend, ErrOption)
	}
	if _, err := format.ParseNumber(c.Display.Number); err != nil {
		return fmt.Errorf("display.number: %s: %w", c.Display.Number, ErrOption)
	}
	return nil
}

type setFunc func(*Config, string) error

var options *ds.Trie[setFunc]

func init() {
	options = ds.NewTrie[setFunc]()
	options.Register([]string{"engine", "backend"}, func(cfg *Config, value string) error {
		cfg.Engine.Backend = strings.ToLower(value)
		return cfg.Validate()
	})
	options.Register([]string{"log", "level"}, func(cfg *Config, value string) error {
		cfg.Log.Level = value
		return nil
	})
	options.Register([]string{"display", "number"}, func(cfg *Config, value string) error {
		cfg.Display.Number = value
		return cfg.Validate()
	})
	options.Register([]string{"log", "file"}, func(cfg *Config, value string) error {
		cfg.Log.File = value
		return nil
	})
}

// Set overrides one option given as key=value where key is the dotted path of
// the option, eg engine.backend=expr.
func (c *Config) Set(option string) error {
	key, value, ok := strings.Cut(option, "=")
	if !ok {
		return fmt.Errorf("%s: missing value: %w", option, ErrOption)
	}
	fn, ok := options.Get(strings.Split(strings.TrimSpace(key), "."))
	if !ok {
		return fmt.Errorf("%s: unknown option: %w", key, ErrOption)
	}
	return fn(c, strings.TrimSpace(value))
}

// Keys lists the options accepted by Set.
func Keys() []string {
	var list []string
	options.Walk(nil, func(path []string, _ setFunc) {
		list = append(list, strings.Join(path, "."))
	})
	return list
}

func ConfigDir() (string, error) {
	if v := os.Getenv("SHEETCALC_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sheetcalc"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sheetcalc"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
