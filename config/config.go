package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	ServerPort  string
	CORSOrigins []string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	LogLevel  string
	LogFormat string

	// Bootstrap admin, created on startup when missing.
	AdminEmail    string
	AdminPassword string
}

// Load reads .env (optional), then environment variables over defaults.
func Load() (*Config, error) {
	// Non-fatal: production sets real environment variables
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("environment", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "student_admin")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("admin_email", "admin@example.com")
	v.SetDefault("admin_password", "")
	v.AutomaticEnv()

	cfg := &Config{
		Environment:   v.GetString("environment"),
		ServerPort:    v.GetString("port"),
		CORSOrigins:   splitList(v.GetString("cors_origins")),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetInt("db_port"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		DBName:        v.GetString("db_name"),
		DBSSLMode:     v.GetString("db_sslmode"),
		JWTSecret:     v.GetString("jwt_secret"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET environment variable is required (min 16 characters)")
	}
	if c.DBPort <= 0 || c.DBPort > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.DBPort)
	}
	return nil
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
