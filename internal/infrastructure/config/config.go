package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	kafkapkg "github.com/bibbank/kyb-service/pkg/kafka"
	pgpkg "github.com/bibbank/kyb-service/pkg/postgres"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort       int
	GRPCPort       int
	GRPCReflection bool
	DB             DBConfig
	Kafka          KafkaConfig
	Telemetry      TelemetryConfig
	Auth           AuthConfig
	TLS            TLSConfig
	Screening      ScreeningConfig
	Outbox         OutboxConfig
	LogLevel       string
	LogFormat      string
	MigrationsDir  string
}

type DBConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type KafkaConfig struct {
	Brokers        []string
	EventsTopic    string
	RescreenTopic  string
	ConsumerGroup  string
	SASLMechanism  string
	SASLUsername   string
	SASLPassword   string
	TLS            bool
	SASLEnabled    bool
	ConsumeEnabled bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	OTLPInsecure bool
}

type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyFile string
	JWTIssuer        string
	JWTLeeway        time.Duration
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// ScreeningConfig controls the reference lists and the periodic rescreen.
type ScreeningConfig struct {
	// ReferenceListFile is a YAML file with sanctions and PEP entries. The
	// built-in demonstration lists are used when empty.
	ReferenceListFile string
	RescreenInterval  time.Duration
	RescreenPageSize  int
}

type OutboxConfig struct {
	RelayInterval time.Duration
	BatchSize     int
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8091),
		GRPCPort:       getEnvInt("GRPC_PORT", 9091),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		DB: DBConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "bib"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "bib_kyb"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvList("KAFKA_BROKERS", "localhost:9092"),
			EventsTopic:    getEnv("KAFKA_EVENTS_TOPIC", "bib.kyb.merchants"),
			RescreenTopic:  getEnv("KAFKA_RESCREEN_TOPIC", "bib.kyb.rescreen-requests"),
			ConsumerGroup:  getEnv("KAFKA_CONSUMER_GROUP", "kyb-service"),
			SASLMechanism:  getEnv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512"),
			SASLUsername:   getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:   getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:            getEnvBool("KAFKA_TLS", false),
			SASLEnabled:    getEnvBool("KAFKA_SASL_ENABLED", false),
			ConsumeEnabled: getEnvBool("KAFKA_CONSUME_RESCREEN", true),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			OTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName:  "kyb-service",
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			JWTIssuer:        getEnv("JWT_ISSUER", "bib-identity"),
			JWTLeeway:        getEnvDuration("JWT_LEEWAY", 30*time.Second),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("TLS_CERT_FILE", ""),
			KeyFile:      getEnv("TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
		},
		Screening: ScreeningConfig{
			ReferenceListFile: getEnv("REFERENCE_LIST_FILE", ""),
			RescreenInterval:  getEnvDuration("RESCREEN_INTERVAL", 24*time.Hour),
			RescreenPageSize:  getEnvInt("RESCREEN_PAGE_SIZE", 100),
		},
		Outbox: OutboxConfig{
			RelayInterval: getEnvDuration("OUTBOX_RELAY_INTERVAL", 5*time.Second),
			BatchSize:     getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
	}
}

// Validate checks required configuration values and reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.DB.URL == "" && c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD or DATABASE_URL is required"))
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyFile == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY_FILE is required"))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required"))
	}
	if c.Kafka.SASLEnabled && (c.Kafka.SASLUsername == "" || c.Kafka.SASLPassword == "") {
		errs = append(errs, errors.New("KAFKA_SASL_USERNAME and KAFKA_SASL_PASSWORD are required when SASL is enabled"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Screening.RescreenInterval < 0 {
		errs = append(errs, fmt.Errorf("RESCREEN_INTERVAL must not be negative, got %s", c.Screening.RescreenInterval))
	}
	if c.Outbox.RelayInterval <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOX_RELAY_INTERVAL must be positive, got %s", c.Outbox.RelayInterval))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ, both are %d", c.HTTPPort))
	}
	return errors.Join(errs...)
}

// Postgres converts the DB settings into pool configuration.
func (c Config) Postgres() pgpkg.Config {
	return pgpkg.Config{
		URL:      c.DB.URL,
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Database: c.DB.Name,
		SSLMode:  c.DB.SSLMode,
		MaxConns: c.DB.MaxConns,
		MinConns: c.DB.MinConns,
	}
}

// KafkaClient converts the Kafka settings into client configuration.
func (c Config) KafkaClient() kafkapkg.Config {
	return kafkapkg.Config{
		Brokers:       c.Kafka.Brokers,
		ConsumerGroup: c.Kafka.ConsumerGroup,
		TLS:           c.Kafka.TLS,
		SASLEnabled:   c.Kafka.SASLEnabled,
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultVal), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
