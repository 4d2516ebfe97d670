package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Tracing   TracingConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Billing   BillingConfig
	Kafka     KafkaConfig
	Events    EventsConfig
	Features  FeatureConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreDriver selects the Patient Store implementation.
type StoreDriver string

const (
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverMemory   StoreDriver = "memory"
)

type DatabaseConfig struct {
	Driver             StoreDriver
	Host               string
	Port               int
	Name               string
	User               string
	Password           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
	AutoMigrate        bool
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	Insecure    bool
	SampleRate  float64
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// AuthConfig holds the settings used to verify access tokens issued by the
// auth service. Verification is skipped when Enabled is false.
type AuthConfig struct {
	Enabled bool
	Secret  string
	Issuer  string
}

type BillingConfig struct {
	Address         string
	Timeout         time.Duration
	AttemptTimeout  time.Duration
	MaxAttempts     int
	InitialBackoff  time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
	TLSCAFile       string
	TLSCertFile     string
	TLSKeyFile      string
}

// KafkaClient selects the producer library used by the event publisher.
type KafkaClient string

const (
	KafkaClientSarama  KafkaClient = "sarama"
	KafkaClientKafkaGo KafkaClient = "kafka-go"
)

type KafkaConfig struct {
	Client            KafkaClient
	Brokers           []string
	Topic             string
	Partitions        int
	ReplicationFactor int
	EnsureTopic       bool
	ClientID          string
	SASLMechanism     string
	SASLUser          string
	SASLPassword      string
}

type EventsConfig struct {
	BufferSize      int
	Workers         int
	PublishTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// FeatureConfig toggles the downstream side effects of the orchestrator.
type FeatureConfig struct {
	Billing      bool
	Events       bool
	UpdateEvents bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "patient-service"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 4000),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:             StoreDriver(getEnv("STORE_DRIVER", string(StoreDriverPostgres))),
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			Name:               getEnv("DB_NAME", "patient-service-db"),
			User:               getEnv("DB_USER", "admin_user"),
			Password:           getEnv("DB_PASSWORD", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime:    getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime:    getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			SlowQueryThreshold: getEnvDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", false),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "patient-service"),
			Endpoint:    getEnv("OTLP_ENDPOINT", "otel-collector:4318"),
			Insecure:    getEnvBool("OTLP_INSECURE", true),
			SampleRate:  getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 100),
			BurstSize:         getEnvInt("RATE_LIMIT_BURST", 200),
		},
		Auth: AuthConfig{
			Enabled: getEnvBool("AUTH_ENABLED", false),
			Secret:  getEnv("JWT_SECRET", ""),
			Issuer:  getEnv("JWT_ISSUER", "auth-service"),
		},
		Billing: BillingConfig{
			Address: fmt.Sprintf("%s:%s",
				getEnv("BILLING_SERVICE_ADDRESS", "localhost"),
				getEnv("BILLING_SERVICE_GRPC_PORT", "9001"),
			),
			Timeout:         getEnvDuration("BILLING_TIMEOUT", 5*time.Second),
			AttemptTimeout:  getEnvDuration("BILLING_ATTEMPT_TIMEOUT", 2*time.Second),
			MaxAttempts:     getEnvInt("BILLING_MAX_ATTEMPTS", 3),
			InitialBackoff:  getEnvDuration("BILLING_INITIAL_BACKOFF", 100*time.Millisecond),
			BreakerFailures: getEnvInt("BILLING_BREAKER_FAILURES", 5),
			BreakerTimeout:  getEnvDuration("BILLING_BREAKER_TIMEOUT", 30*time.Second),
			TLSCAFile:       getEnv("BILLING_TLS_CA_FILE", ""),
			TLSCertFile:     getEnv("BILLING_TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("BILLING_TLS_KEY_FILE", ""),
		},
		Kafka: KafkaConfig{
			Client:            KafkaClient(getEnv("KAFKA_CLIENT", string(KafkaClientSarama))),
			Brokers:           getEnvSlice("KAFKA_BOOTSTRAP_SERVERS", []string{"localhost:9092"}),
			Topic:             getEnv("KAFKA_TOPIC", "patient"),
			Partitions:        getEnvInt("KAFKA_TOPIC_PARTITIONS", 3),
			ReplicationFactor: getEnvInt("KAFKA_TOPIC_REPLICAS", 1),
			EnsureTopic:       getEnvBool("KAFKA_ENSURE_TOPIC", true),
			ClientID:          getEnv("KAFKA_CLIENT_ID", "patient-service"),
			SASLMechanism:     getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUser:          getEnv("KAFKA_SASL_USER", ""),
			SASLPassword:      getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Events: EventsConfig{
			BufferSize:      getEnvInt("EVENTS_BUFFER_SIZE", 1024),
			Workers:         getEnvInt("EVENTS_WORKERS", 2),
			PublishTimeout:  getEnvDuration("EVENTS_PUBLISH_TIMEOUT", 5*time.Second),
			ShutdownTimeout: getEnvDuration("EVENTS_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Features: FeatureConfig{
			Billing:      getEnvBool("FEATURE_BILLING", true),
			Events:       getEnvBool("FEATURE_EVENTS", true),
			UpdateEvents: getEnvBool("FEATURE_UPDATE_EVENTS", false),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	switch cfg.Database.Driver {
	case StoreDriverPostgres:
		if cfg.Database.Password == "" && cfg.App.Environment != "development" {
			errs = append(errs, "DB_PASSWORD is required in non-development environments")
		}
		if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
			errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
		}
	case StoreDriverMemory:
		if cfg.App.Environment == "production" {
			errs = append(errs, "STORE_DRIVER=memory is not allowed in production")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory))
	}

	if cfg.Auth.Enabled {
		if cfg.Auth.Secret == "" {
			errs = append(errs, "JWT_SECRET is required when AUTH_ENABLED=true")
		} else if len(cfg.Auth.Secret) < 32 && cfg.App.Environment == "production" {
			errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
		}
	}

	if cfg.Features.Billing {
		if cfg.Billing.Timeout <= 0 || cfg.Billing.AttemptTimeout <= 0 {
			errs = append(errs, "BILLING_TIMEOUT and BILLING_ATTEMPT_TIMEOUT must be positive")
		}
		if cfg.Billing.MaxAttempts < 1 {
			errs = append(errs, "BILLING_MAX_ATTEMPTS must be at least 1")
		}
		if (cfg.Billing.TLSCertFile == "") != (cfg.Billing.TLSKeyFile == "") {
			errs = append(errs, "BILLING_TLS_CERT_FILE and BILLING_TLS_KEY_FILE must be set together")
		}
	}

	if cfg.Features.UpdateEvents && !cfg.Features.Events {
		errs = append(errs, "FEATURE_UPDATE_EVENTS requires FEATURE_EVENTS=true")
	}

	if cfg.Features.Events {
		switch cfg.Kafka.Client {
		case KafkaClientSarama, KafkaClientKafkaGo:
		default:
			errs = append(errs, fmt.Sprintf("KAFKA_CLIENT must be %q or %q", KafkaClientSarama, KafkaClientKafkaGo))
		}
		if cfg.Kafka.Topic == "" {
			errs = append(errs, "KAFKA_TOPIC is required")
		}
		if cfg.Events.Workers < 1 || cfg.Events.BufferSize < 1 {
			errs = append(errs, "EVENTS_WORKERS and EVENTS_BUFFER_SIZE must be at least 1")
		}
		if cfg.Events.PublishTimeout <= 0 {
			errs = append(errs, "EVENTS_PUBLISH_TIMEOUT must be positive")
		}
		if cfg.Kafka.SASLMechanism != "" && cfg.Kafka.Client != KafkaClientSarama {
			errs = append(errs, "KAFKA_SASL_MECHANISM is only supported with KAFKA_CLIENT=sarama")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
