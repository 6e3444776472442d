package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Events   EventsConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	ChallengeTTL time.Duration
}

type CatalogConfig struct {
	RefreshInterval time.Duration
	SeedFile        string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "trade2cart")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "trade2cart")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("CHALLENGE_TTL", "5m")
	viper.SetDefault("CATALOG_REFRESH_INTERVAL", "30s")
	viper.SetDefault("CATALOG_SEED_FILE", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "trade2cart_events")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(viper.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, err
	}

	challengeTTL, err := time.ParseDuration(viper.GetString("CHALLENGE_TTL"))
	if err != nil {
		return nil, err
	}

	refreshInterval, err := time.ParseDuration(viper.GetString("CATALOG_REFRESH_INTERVAL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Auth: AuthConfig{
			JWTSecret:    viper.GetString("JWT_SECRET"),
			TokenTTL:     tokenTTL,
			ChallengeTTL: challengeTTL,
		},
		Catalog: CatalogConfig{
			RefreshInterval: refreshInterval,
			SeedFile:        viper.GetString("CATALOG_SEED_FILE"),
		},
		Events: EventsConfig{
			AMQPURL:  viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
