package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"radioboard/domain"

	"gopkg.in/yaml.v3"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

type Config struct {
	Env      string          `yaml:"env"`
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
	Database DatabaseConfig  `yaml:"database"`
	Auth     AuthConfig      `yaml:"auth"`
	Programs []ProgramConfig `yaml:"programs"`
	TimeZone string          `yaml:"time_zone"`
}

type ServerConfig struct {
	Address       string `yaml:"address"`
	FlashSecret   string `yaml:"flash_secret"`
	CertCache     string `yaml:"cert_cache"`
	WhitelistHost string `yaml:"whitelist_host"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// AuthConfig is the single credential pair guarding the whole site.
// Password may be a bcrypt hash.
type AuthConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type ProgramConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

var defaultPrograms = []ProgramConfig{
	{ID: "hybrid", Name: "ハイブリッドモーニング", Color: "#FFD700"},
	{ID: "mimikoi", Name: "耳恋", Color: "#FF6B6B"},
	{ID: "baby", Name: "濱田兄弟のグンナイベイビー", Color: "#4169E1"},
}

// Load reads the first config file found and applies environment overrides.
func Load(configFile string) (*Config, error) {
	c := &Config{
		Env:      ProEnv,
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "sqlite"},
		Server:   ServerConfig{CertCache: "/var/www/.cache"},
		TimeZone: "Local",
	}

	paths := []string{"etc/config-dev.yaml", "/etc/radioboard/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) && configFile == "" {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	envOverride(&c.Env, "ENV")
	envOverride(&c.Server.Address, "ADDRESS_LISTEN")
	envOverride(&c.Server.FlashSecret, "FLASH_SECRET")
	envOverride(&c.Server.WhitelistHost, "WHITELIST_HOST")
	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.URL, "DB_URL")
	envOverride(&c.Auth.User, "BASIC_AUTH_USER")
	envOverride(&c.Auth.Password, "BASIC_AUTH_PASS")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.TimeZone, "TZ_NAME")

	if len(c.Programs) == 0 {
		c.Programs = defaultPrograms
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) finish() error {
	if c.Env == DevEnv {
		if c.Server.Address == "" {
			c.Server.Address = ":8080"
		}
		if c.Server.FlashSecret == "" {
			c.Server.FlashSecret = "unsecure"
		}
		if c.Auth.User == "" && c.Auth.Password == "" {
			c.Auth = AuthConfig{User: "admin", Password: "admin"}
		}
	}
	if c.Server.FlashSecret == "" {
		return errors.New("no flash secret defined")
	}
	if c.Auth.User == "" || c.Auth.Password == "" {
		return errors.New("no basic auth credentials defined")
	}
	for i, p := range c.Programs {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("program #%d has no id", i+1)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Registry freezes the configured programs into a lookup table.
func (c *Config) Registry() domain.Registry {
	programs := make([]domain.Program, 0, len(c.Programs))
	for _, p := range c.Programs {
		programs = append(programs, domain.Program{ID: p.ID, Name: p.Name, Color: p.Color, Description: p.Description})
	}
	return domain.NewRegistry(programs)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) IsDev() bool { return c.Env == DevEnv }

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
