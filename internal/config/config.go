package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	Secret     string        `mapstructure:"secret"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`

	TurnDuration  time.Duration `mapstructure:"turn_duration"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	MinPlayers    int           `mapstructure:"min_players"`
	EvictionGrace time.Duration `mapstructure:"eviction_grace"`

	ChatRateLimit float64 `mapstructure:"chat_rate_limit"`
	ChatRateBurst int     `mapstructure:"chat_rate_burst"`

	PostgresDSN string `mapstructure:"postgres_dsn"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./public")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("turn_duration", "90s")
	v.SetDefault("tick_interval", "1s")
	v.SetDefault("min_players", 3)
	v.SetDefault("eviction_grace", "1h")
	v.SetDefault("chat_rate_limit", 1.0)
	v.SetDefault("chat_rate_burst", 5)
	v.SetDefault("postgres_dsn", "")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Turn: %s\n", cfg.Mode, cfg.Port, cfg.TurnDuration)
	return &cfg, nil
}
