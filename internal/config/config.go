package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMinio    = "minio"
	DriverMemory   = "memory"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text"`
	HTTP      HTTP     `envPrefix:"HTTP_"`
	GRPC      GRPC     `envPrefix:"GRPC_"`
	Ops       Ops      `envPrefix:"OPS_"`
	Store     Store    `envPrefix:"STORE_"`
	Mongo     Mongo    `envPrefix:"MONGO_"`
	Database  Database `envPrefix:"DATABASE_"`
	Redis     Redis    `envPrefix:"REDIS_"`
	Storage   Storage  `envPrefix:"MINIO_"`
	Auth      Auth     `envPrefix:"AUTH_"`
	JWT       JWT      `envPrefix:"JWT_"`
}

// HTTP contains parameters of both HTTP listeners.
type HTTP struct {
	RouterAddr         string        `env:"ROUTER_ADDR" envDefault:":5000"`
	RawAddr            string        `env:"RAW_ADDR" envDefault:":3001"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ReadHeaderTimeout  time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
}

// GRPC contains gRPC server parameters.
type GRPC struct {
	Addr string `env:"ADDR" envDefault:":50051"`
}

// Ops contains parameters of the metrics and health listener.
type Ops struct {
	Addr string `env:"ADDR" envDefault:":9090"`
}

// Store selects the document store driver.
type Store struct {
	Driver     string `env:"DRIVER" envDefault:"mongo"`
	Collection string `env:"COLLECTION" envDefault:"users"`
	// Timeout bounds every store call when positive.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0"`
}

// Mongo contains MongoDB connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"demo-database"`
}

// Database contains PostgreSQL connection parameters.
type Database struct {
	DSN string `env:"DSN" envDefault:"postgres://localhost:5432/userdesk?sslmode=disable"`
}

// Redis contains Redis connection parameters.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"userdesk"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Auth toggles the bearer token check on every transport.
type Auth struct {
	Required bool `env:"REQUIRED" envDefault:"false"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"15m"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverPostgres, DriverRedis, DriverMinio, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Store.Collection == "" {
		return errors.New("store collection is empty")
	}

	if c.Auth.Required && c.JWT.Secret == "" {
		return errors.New("AUTH_REQUIRED needs JWT_SECRET")
	}

	if !Enabled(c.HTTP.RouterAddr) && !Enabled(c.HTTP.RawAddr) && !Enabled(c.GRPC.Addr) {
		return errors.New("no listener enabled")
	}

	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("HTTP_MAX_BODY_BYTES must be positive")
	}

	return nil
}

// Disabled is the address value that turns a listener off.
const Disabled = "off"

// Enabled reports whether a listener address is switched on.
func Enabled(addr string) bool {
	return addr != "" && addr != Disabled
}

// LoadDotenv loads variables from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}
