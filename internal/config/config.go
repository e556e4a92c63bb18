package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Rollover RolloverConfig `koanf:"rollover"`
	Reminder ReminderConfig `koanf:"reminder"`
	Telegram TelegramConfig `koanf:"telegram"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type RolloverConfig struct {
	// Time is the local wall-clock HH:MM at which the daily rollover runs.
	Time string `koanf:"time"`
	// AutoDelete enables the cleanup sweep of old completed tasks.
	AutoDelete     bool `koanf:"auto_delete"`
	AutoDeleteDays int  `koanf:"auto_delete_days"`
}

type ReminderConfig struct {
	DailyEnabled bool   `koanf:"daily_enabled"`
	DailyTime    string `koanf:"daily_time"`
	MoodEnabled  bool   `koanf:"mood_enabled"`
	MoodTime     string `koanf:"mood_time"`
}

type TelegramConfig struct {
	Token  string `koanf:"token"`
	ChatID int64  `koanf:"chat_id"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"database.path":             "commitd.db",
		"rollover.time":             "00:05",
		"rollover.auto_delete":      false,
		"rollover.auto_delete_days": 30,
		"reminder.daily_enabled":    true,
		"reminder.daily_time":       "09:00",
		"reminder.mood_enabled":     true,
		"reminder.mood_time":        "20:00",
		"telegram.token":            "",
		"telegram.chat_id":          int64(0),
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// COMMITD_* environment variables, in increasing precedence. An empty
// configPath skips the file layer; a missing file at the default location is
// not an error.
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config file %s: %w", configPath, err)
		}
	}

	// COMMITD_ROLLOVER_TIME -> rollover.time, etc.
	if err := k.Load(env.Provider("COMMITD_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "COMMITD_")), "_", ".", 1)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "commitd.db"
	}
	if cfg.Rollover.AutoDeleteDays <= 0 {
		cfg.Rollover.AutoDeleteDays = 30
	}

	return cfg, nil
}
