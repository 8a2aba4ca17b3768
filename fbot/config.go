package fbot

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log       LogConfig       `toml:"log"`
	Bot       BotConfig       `toml:"bot"`
	DB        DBConfig        `toml:"db"`
	Engine    EngineConfig    `toml:"engine"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Spaces    SpacesConfig    `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// EngineConfig tunes the background loops. Zero values fall back to the
// intervals the bot has always used.
type EngineConfig struct {
	SchedulerTick    time.Duration `toml:"scheduler_tick"`
	StatsRefreshTick time.Duration `toml:"stats_refresh_tick"`
	RaidWindow       time.Duration `toml:"raid_window"`
}

type DashboardConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	APIToken string `toml:"api_token"`
}

type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Root   string `toml:"root"`
}

func (c *Config) applyDefaults() {
	if c.Engine.SchedulerTick == 0 {
		c.Engine.SchedulerTick = 30 * time.Second
	}
	if c.Engine.StatsRefreshTick == 0 {
		c.Engine.StatsRefreshTick = 5 * time.Minute
	}
	if c.Engine.RaidWindow == 0 {
		c.Engine.RaidWindow = time.Minute
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = ":8090"
	}
}
