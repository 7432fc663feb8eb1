package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/plantops/greenops/internal/domain"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("GREENOPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without GREENOPS_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "GREENOPS_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "GREENOPS_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "GREENOPS_REDIS_URL")
	viper.BindEnv("queue.nats_url", "NATS_URL", "GREENOPS_QUEUE_NATS_URL")
	viper.BindEnv("queue.rabbitmq_url", "RABBITMQ_URL", "GREENOPS_QUEUE_RABBITMQ_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "GREENOPS_JWT_SECRET")
	viper.BindEnv("ml.base_url", "ML_BASE_URL", "GREENOPS_ML_BASE_URL")
	viper.BindEnv("ml.api_key", "ML_API_KEY", "GREENOPS_ML_API_KEY")
	viper.BindEnv("email.sendgrid_api_key", "SENDGRID_API_KEY")
	viper.BindEnv("ingest.csv_path", "GREENOPS_CSV_PATH")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file means env vars and defaults only; that is fine.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults seeds every analysis threshold so a bare deployment behaves
// like the documented defaults even without a config file.
func setDefaults() {
	viper.SetDefault("app.name", "greenops")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("http.port", 8000)
	viper.SetDefault("queue.provider", "nats")
	viper.SetDefault("prometheus.path", "/metrics")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	def := domain.DefaultAnalysisConfig()
	viper.SetDefault("analysis.energy_per_vehicle_benchmark", def.EnergyPerVehicleBenchmark)
	viper.SetDefault("analysis.paint_oven_idle_multiplier", def.PaintOvenIdleMultiplier)
	viper.SetDefault("analysis.air_leak_ratio_threshold", def.AirLeakRatioThreshold)
	viper.SetDefault("analysis.hvac_low_temp_threshold", def.HVACLowTempThreshold)
	viper.SetDefault("analysis.standby_energy_percent", def.StandbyEnergyPercent)
	viper.SetDefault("analysis.co2_factor", def.CO2Factor)
	viper.SetDefault("analysis.currency_per_kwh", def.CurrencyPerKWh)
	viper.SetDefault("analysis.hours_per_day", def.HoursPerDay)
	viper.SetDefault("analysis.baseline_fallback", def.BaselineFallback)
}
