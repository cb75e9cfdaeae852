package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by database.Open
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Media backends
const (
	MediaDisk = "disk"
	MediaS3   = "s3"
)

// Session stores
const (
	SessionStoreDB     = "db"
	SessionStoreCookie = "cookie"
)

// Config holds all runtime settings of the server.
// Values come from the environment (optionally seeded from a .env file), CLI flags override them.
type Config struct {
	DBDriver string
	DBDSN    string
	LogSQL   bool

	BindAddress string
	TLSDomains  []string // autotls is used when set, e.g. "example.com,www.example.com"
	CORSOrigins []string // applied to /media/
	DebugMode   bool

	SessionStore  string
	SessionSecret string
	SessionMaxAge int // seconds
	JWTSecret     string

	MediaBackend string
	MediaRoot    string // disk backend base directory
	MediaURL     string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string // for S3 compatible services, empty for AWS
	S3AccessKey  string
	S3SecretKey  string
	S3Prefix     string

	CacheTTL time.Duration
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		DBDriver:      DriverSQLite,
		DBDSN:         "yatube.db",
		BindAddress:   "0.0.0.0:8080",
		CORSOrigins:   []string{"*"},
		DebugMode:     true,
		SessionStore:  SessionStoreDB,
		SessionSecret: "yatube-dev-session-secret-change-me",
		SessionMaxAge: 14 * 86400, // 2 weeks
		JWTSecret:     "yatube-dev-secret-change-in-production",
		MediaBackend:  MediaDisk,
		MediaRoot:     "media",
		MediaURL:      "/media/",
		S3Region:      "us-east-1",
		CacheTTL:      20 * time.Second,
	}
}

// Load reads .env (if present) and the environment on top of Default().
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: cannot read .env: %v", err)
	}
	cfg := Default()
	readEnvString("YATUBE_DB_DRIVER", &cfg.DBDriver)
	readEnvString("YATUBE_DB_DSN", &cfg.DBDSN)
	readEnvBool("LOG_SQL", &cfg.LogSQL)
	readEnvString("BIND_ADDRESS", &cfg.BindAddress)
	readEnvList("TLS_DOMAINS", &cfg.TLSDomains)
	readEnvList("CORS_ORIGINS", &cfg.CORSOrigins)
	readEnvBool("DEBUG_MODE", &cfg.DebugMode)
	readEnvString("SESSION_STORE", &cfg.SessionStore)
	readEnvString("SESSION_SECRET", &cfg.SessionSecret)
	readEnvInt("SESSION_MAX_AGE", &cfg.SessionMaxAge)
	readEnvString("JWT_SECRET", &cfg.JWTSecret)
	readEnvString("MEDIA_BACKEND", &cfg.MediaBackend)
	readEnvString("MEDIA_ROOT", &cfg.MediaRoot)
	readEnvString("MEDIA_URL", &cfg.MediaURL)
	readEnvString("S3_BUCKET", &cfg.S3Bucket)
	readEnvString("S3_REGION", &cfg.S3Region)
	readEnvString("S3_ENDPOINT", &cfg.S3Endpoint)
	readEnvString("S3_ACCESS_KEY", &cfg.S3AccessKey)
	readEnvString("S3_SECRET_KEY", &cfg.S3SecretKey)
	readEnvString("S3_PREFIX", &cfg.S3Prefix)
	readEnvDuration("CACHE_TTL", &cfg.CacheTTL)
	return cfg
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

// readEnvDuration accepts Go durations ("30s") or plain seconds ("30")
func readEnvDuration(name string, value *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*value = d
		return
	}
	if s, err := strconv.Atoi(v); err == nil {
		*value = time.Duration(s) * time.Second
	}
}

func readEnvList(name string, value *[]string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*value = items
}
