package config

import (
	"time"

	"github.com/plantops/greenops/internal/domain"
)

type Config struct {
	App           AppConfig             `mapstructure:"app"`
	HTTP          HTTPConfig            `mapstructure:"http"`
	Database      DatabaseConfig        `mapstructure:"database"`
	Redis         RedisConfig           `mapstructure:"redis"`
	Queue         QueueConfig           `mapstructure:"queue"`
	JWT           JWTConfig             `mapstructure:"jwt"`
	ML            MLConfig              `mapstructure:"ml"`
	Email         EmailConfig           `mapstructure:"email"`
	Ingest        IngestConfig          `mapstructure:"ingest"`
	Analysis      domain.AnalysisConfig `mapstructure:"analysis"`
	OpenTelemetry OpenTelemetryConfig   `mapstructure:"opentelemetry"`
	Prometheus    PrometheusConfig      `mapstructure:"prometheus"`
	Logging       LoggingConfig         `mapstructure:"logging"`
	CORS          CORSConfig            `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// QueueConfig selects the message broker. Provider is "nats" or "rabbitmq".
type QueueConfig struct {
	Provider    string `mapstructure:"provider"`
	NATSURL     string `mapstructure:"nats_url"`
	RabbitMQURL string `mapstructure:"rabbitmq_url"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type MLConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type EmailConfig struct {
	Provider       string   `mapstructure:"provider"`
	FromEmail      string   `mapstructure:"from_email"`
	FromName       string   `mapstructure:"from_name"`
	SendGridAPIKey string   `mapstructure:"sendgrid_api_key"`
	SMTPHost       string   `mapstructure:"smtp_host"`
	SMTPPort       int      `mapstructure:"smtp_port"`
	SMTPUsername   string   `mapstructure:"smtp_username"`
	SMTPPassword   string   `mapstructure:"smtp_password"`
	SMTPUseTLS     bool     `mapstructure:"smtp_use_tls"`
	BaseURL        string   `mapstructure:"base_url"`
	Recipients     []string `mapstructure:"recipients"`
}

// IngestConfig points at the CSV extract loaded on demand when the
// database holds no operational records yet.
type IngestConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type OpenTelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}
