package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Kafka       KafkaConfig
	Email       EmailConfig
	Auth        AuthConfig
	Reservation ReservationConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig selects one of the two supported backends:
// "sqlite" (embedded, Path) or "postgres" (networked, DSN).
type DatabaseConfig struct {
	Backend       string
	Path          string
	DSN           string
	AutoMigrate   bool
	MigrationsDir string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Enabled  bool
	MockMode bool
	Topics   TopicConfig
}

type TopicConfig struct {
	ReservationCreated   string
	ReservationMerged    string
	ReservationCancelled string
}

type EmailConfig struct {
	Enabled      bool
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
	OperatorAddr string
}

type AuthConfig struct {
	OwnerPassphrase string
	JWTSecret       string
	TokenTTL        time.Duration
	QRSecret        string
}

type ReservationConfig struct {
	// MergeEnabled opts into folding duplicate (event, email) bookings
	// into one row. The baseline policy is always-insert.
	MergeEnabled bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Backend:       getEnv("DB_BACKEND", "sqlite"),
			Path:          getEnv("SQLITE_PATH", "live_reservation.db"),
			DSN:           getEnv("POSTGRES_DSN", ""),
			AutoMigrate:   getEnvBool("DB_AUTO_MIGRATE", false),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "./migrations"),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Topics: TopicConfig{
				ReservationCreated:   getEnv("KAFKA_TOPIC_RESERVATION_CREATED", "reservations.created"),
				ReservationMerged:    getEnv("KAFKA_TOPIC_RESERVATION_MERGED", "reservations.merged"),
				ReservationCancelled: getEnv("KAFKA_TOPIC_RESERVATION_CANCELLED", "reservations.cancelled"),
			},
		},
		Email: EmailConfig{
			Enabled:      getEnvBool("SMTP_ENABLED", false),
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("SMTP_FROM", "noreply@onceover.example"),
			OperatorAddr: getEnv("OPERATOR_EMAIL", "owner@onceover.example"),
		},
		Auth: AuthConfig{
			OwnerPassphrase: getEnv("OWNER_PASSPHRASE", "owner123"),
			JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:        time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
			QRSecret:        getEnv("QR_SECRET", "dev-qr-secret"),
		},
		Reservation: ReservationConfig{
			MergeEnabled: getEnvBool("RESERVATION_MERGE_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
