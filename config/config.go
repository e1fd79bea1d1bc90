// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	// DBDriver selects the store: postgres, mysql, sqlite or memory.
	DBDriver string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// MySQL DSN, used when DBDriver is mysql.
	MySQLDSN string

	// SQLite database file, used when DBDriver is sqlite.
	SQLitePath string

	// Session token signing secret.
	SessionSecret string

	// Authorization
	AdminRoles         []string
	AdminPrefixes      []string
	RequireAdminWrites bool

	// Image storage. Empty bucket disables uploads.
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg := load()
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// LoadDatabase is Load for tools that only talk to the database; it does not
// require a session secret.
func LoadDatabase() *Config {
	cfg := load()
	if err := cfg.validateDatabase(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_USER", "concursos")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "concursos")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "concursos.db")
	v.SetDefault("ADMIN_ROLES", "admin,ADMIN,dashboard_admin,org:admin")
	v.SetDefault("ADMIN_PREFIXES", "/dashboard,/admin")
	v.SetDefault("REQUIRE_ADMIN_WRITES", true)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "concursosganaderos.app,www.concursosganaderos.app")
	v.SetDefault("DEBUG", false)

	return &Config{
		DBDriver:           strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBUser:             v.GetString("DB_USER"),
		DBPass:             v.GetString("DB_PASS"),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		MySQLDSN:           v.GetString("MYSQL_DSN"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		AdminRoles:         splitTrimmed(v.GetString("ADMIN_ROLES")),
		AdminPrefixes:      splitTrimmed(v.GetString("ADMIN_PREFIXES")),
		RequireAdminWrites: v.GetBool("REQUIRE_ADMIN_WRITES"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Region:           v.GetString("S3_REGION"),
		S3AccessKeyID:      v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:  v.GetString("S3_SECRET_ACCESS_KEY"),
		S3PublicURL:        v.GetString("S3_PUBLIC_URL"),
		Debug:              v.GetBool("DEBUG"),
		Port:               v.GetString("PORT"),
		TLSDomains:         splitTrimmed(v.GetString("TLS_DOMAINS")),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// SQLiteDSN opens SQLitePath with foreign keys enforced.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// SessionKey returns the session signing key as a byte slice.
func (c *Config) SessionKey() []byte {
	return []byte(c.SessionSecret)
}

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("config: SESSION_SECRET must be set")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && c.DBPass == "" {
			return fmt.Errorf("config: DATABASE_URL or DB_PASS must be set")
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("config: MYSQL_DSN must be set when DB_DRIVER=mysql")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH must be set when DB_DRIVER=sqlite")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
