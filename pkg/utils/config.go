package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	OMDB       OMDBConfig
	Enrichment EnrichmentConfig
	Auth       AuthConfig
	Admin      AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type OMDBConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type EnrichmentConfig struct {
	Workers       int
	QueueSize     int
	ShutdownGrace time.Duration
}

type AuthConfig struct {
	SessionExpiryHours int
}

// AdminConfig seeds the initial admin account. Register only ever
// creates read-only users, so without this there is no admin at all.
type AdminConfig struct {
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("OMDB_API_URL", "http://www.omdbapi.com/")
	viper.SetDefault("OMDB_API_KEY", "demo")
	viper.SetDefault("OMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("ENRICHMENT_WORKERS", 2)
	viper.SetDefault("ENRICHMENT_QUEUE_SIZE", 100)
	viper.SetDefault("ENRICHMENT_SHUTDOWN_GRACE_SECONDS", 30)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		OMDB: OMDBConfig{
			APIKey:  viper.GetString("OMDB_API_KEY"),
			BaseURL: viper.GetString("OMDB_API_URL"),
			Timeout: time.Duration(viper.GetInt("OMDB_TIMEOUT_SECONDS")) * time.Second,
		},
		Enrichment: EnrichmentConfig{
			Workers:       viper.GetInt("ENRICHMENT_WORKERS"),
			QueueSize:     viper.GetInt("ENRICHMENT_QUEUE_SIZE"),
			ShutdownGrace: time.Duration(viper.GetInt("ENRICHMENT_SHUTDOWN_GRACE_SECONDS")) * time.Second,
		},
		Auth: AuthConfig{
			SessionExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}
