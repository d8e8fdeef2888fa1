package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		APIKey   string `envconfig:"API_KEY"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Booking struct {
		SlotStepMinutes     int    `default:"15"         envconfig:"SLOT_STEP_MINUTES"     validate:"gt=0,lte=60"`
		SessionStore        string `default:"redis"      envconfig:"SESSION_STORE"         validate:"oneof=redis memory"`
		SessionTTLSeconds   int    `default:"1800"       envconfig:"SESSION_TTL_SECONDS"   validate:"gt=0"`
		SessionSweepSpec    string `default:"@every 1m"  envconfig:"SESSION_SWEEP_SPEC"`
		ReminderHoursBefore []int  `default:"8,2"        envconfig:"REMINDER_HOURS_BEFORE" validate:"dive,gt=0"`
		SlotConcurrency     int    `default:"4"          envconfig:"SLOT_CONCURRENCY"      validate:"gt=0"`
	} `envconfig:"BOOKING"`

	JWT struct {
		Secret        string `envconfig:"SECRET"`
		Issuer        string `envconfig:"ISSUER"`
		ExpireMinutes int    `default:"60" envconfig:"EXPIRE_MINUTES"`
	} `envconfig:"JWT"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `default:"300" envconfig:"TTL" validate:"gt=0"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			AppointmentCreated  string `default:"appointment.created"  envconfig:"APPOINTMENT_CREATED"`
			AppointmentReminder string `default:"appointment.reminder" envconfig:"APPOINTMENT_REMINDER"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Queue struct {
		Redis struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"REDIS"`
		Concurrency int `default:"10" envconfig:"CONCURRENCY"`
	} `envconfig:"QUEUE"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `default:"1" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `default:"auto" envconfig:"REGION"`
			MaxUploadSizeMB int    `default:"5"    envconfig:"MAX_UPLOAD_SIZE_MB"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var cached = sync.OnceValue(func() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid service configuration")
	}

	return cfg
})

// Load reads .env when present, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file, using the process environment")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	return cached()
}
