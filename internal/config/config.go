package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	GCS       GCSConfig       `yaml:"gcs"`
	Couchdrop CouchdropConfig `yaml:"couchdrop"`
	Auth      AuthConfig      `yaml:"auth"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DatabaseConfig prefers fragmented credentials (Secret Manager wires
// DB_USER/DB_PASS/DB_NAME individually) over a unified URL. When the
// portal runs next to Cloud SQL the connection goes through the
// /cloudsql unix socket.
type DatabaseConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	URL                string `yaml:"url"`
	CloudSQLConnection string `yaml:"cloud_sql_connection_name"`
}

type GCSConfig struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Token    string `yaml:"token"`
}

type CouchdropConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

type AuthConfig struct {
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

func Load(configFile string) *Config {
	// .env is optional; real deployments set plain env vars.
	_ = godotenv.Load()

	c := &Config{
		Server:   ServerConfig{Port: 8080},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, Name: "fsi_app"},
		Auth:     AuthConfig{Secret: "dev-only-change-me", TokenTTLHours: 12},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/pod-portal/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Database.URL, "DATABASE_URL")
	envOverride(&c.Database.CloudSQLConnection, "CLOUD_SQL_CONNECTION_NAME")
	envOverride(&c.GCS.Endpoint, "GCS_ENDPOINT")
	envOverride(&c.GCS.Bucket, "GCS_BUCKET_NAME")
	envOverride(&c.GCS.Token, "GCS_TOKEN")
	envOverride(&c.Couchdrop.Endpoint, "COUCHDROP_URL")
	envOverride(&c.Couchdrop.Token, "COUCHDROP_TOKEN")
	envOverride(&c.Auth.Secret, "SECRET_KEY")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// DSN builds the Postgres connection string, fragmented credentials
// winning over the unified URL.
func (c *Config) DSN() string {
	d := c.Database
	if d.User != "" && d.Password != "" && d.Name != "" {
		if d.CloudSQLConnection != "" {
			return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s",
				d.CloudSQLConnection, d.User, d.Password, d.Name)
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.User, d.Password, d.Name)
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s sslmode=disable", d.Host, d.Port, d.Name)
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
