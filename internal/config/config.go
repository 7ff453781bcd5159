package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSnapshotKey is the storage key the department snapshot lives under.
const DefaultSnapshotKey = "sample.all-department-model"

// Snapshot drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
	DriverMongo    = "mongo"
	DriverNATS     = "nats"
)

// Corrupt snapshot policies.
const (
	OnCorruptFail = "fail"
	OnCorruptSeed = "seed"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Snapshot  SnapshotConfig
	Employees EmployeeConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	SQLite    SQLiteConfig
	S3        S3Config
	Mongo     MongoConfig
	NATS      NATSConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SnapshotConfig selects where and how the department snapshot is stored.
type SnapshotConfig struct {
	Driver     string
	Key        string
	EscapeText bool
	OnCorrupt  string
	Autosave   bool
	FileDir    string
}

// EmployeeConfig toggles employee input policies.
type EmployeeConfig struct {
	StrictIDs     bool
	SanitizeNames bool
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SQLiteConfig holds the database file location.
type SQLiteConfig struct {
	Path string
}

// S3Config holds S3 (or S3-compatible) bucket settings.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// MongoConfig holds MongoDB connection values.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NATSConfig holds NATS connection values.
type NATSConfig struct {
	URL           string
	KVBucket      string
	EventSubject  string
	PublishEvents bool
	MaxReconnects int
	ReconnectWait time.Duration
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "employee-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Snapshot: SnapshotConfig{
			Driver:     strings.ToLower(getEnv("SNAPSHOT_DRIVER", DriverMemory)),
			Key:        getEnv("SNAPSHOT_KEY", DefaultSnapshotKey),
			EscapeText: getEnvAsBool("SNAPSHOT_ESCAPE_TEXT", true),
			OnCorrupt:  strings.ToLower(getEnv("SNAPSHOT_ON_CORRUPT", OnCorruptFail)),
			Autosave:   getEnvAsBool("SNAPSHOT_AUTOSAVE", false),
			FileDir:    getEnv("SNAPSHOT_FILE_DIR", "data"),
		},
		Employees: EmployeeConfig{
			StrictIDs:     getEnvAsBool("EMPLOYEE_STRICT_IDS", false),
			SanitizeNames: getEnvAsBool("EMPLOYEE_SANITIZE_NAMES", false),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/employees.db"),
		},
		S3: S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PathStyle: getEnvAsBool("S3_PATH_STYLE", false),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database:   getEnv("MONGO_DATABASE", "employees"),
			Collection: getEnv("MONGO_COLLECTION", "snapshots"),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", "nats://127.0.0.1:4222"),
			KVBucket:      getEnv("NATS_KV_BUCKET", "employee_snapshots"),
			EventSubject:  getEnv("NATS_EVENT_SUBJECT", "employees.events"),
			PublishEvents: getEnvAsBool("NATS_PUBLISH_EVENTS", false),
			MaxReconnects: getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait: time.Duration(getEnvAsInt("NATS_RECONNECT_WAIT_SECONDS", 2)) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Snapshot.Driver {
	case DriverMemory, DriverFile, DriverRedis, DriverPostgres, DriverSQLite, DriverS3, DriverMongo, DriverNATS:
	default:
		return fmt.Errorf("invalid SNAPSHOT_DRIVER %q", c.Snapshot.Driver)
	}
	switch c.Snapshot.OnCorrupt {
	case OnCorruptFail, OnCorruptSeed:
	default:
		return fmt.Errorf("invalid SNAPSHOT_ON_CORRUPT %q", c.Snapshot.OnCorrupt)
	}
	if c.Snapshot.Key == "" {
		return fmt.Errorf("SNAPSHOT_KEY must not be empty")
	}
	return nil
}

// UsesNATS reports whether any component needs a NATS connection.
func (c *Config) UsesNATS() bool {
	return c.Snapshot.Driver == DriverNATS || c.NATS.PublishEvents
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
