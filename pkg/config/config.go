package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is intentionally empty; each field carries its fully
	// qualified FORECASTIQ_* variable name.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Engine    EngineConfig
	Reports   ReportsConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FORECASTIQ_APP_ENV" default:"development"`
	Port         string `envconfig:"FORECASTIQ_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FORECASTIQ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FORECASTIQ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FORECASTIQ_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"FORECASTIQ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FORECASTIQ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FORECASTIQ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FORECASTIQ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FORECASTIQ_REDIS_URL"`
	Address      string        `envconfig:"FORECASTIQ_REDIS_ADDR"`
	Password     string        `envconfig:"FORECASTIQ_REDIS_PASSWORD"`
	DB           int           `envconfig:"FORECASTIQ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FORECASTIQ_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"FORECASTIQ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FORECASTIQ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FORECASTIQ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FORECASTIQ_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// EngineConfig carries the tunable assumptions of the derivation engine.
// Expansion and contraction are modeled rates, not observed data; they default
// to the product team's placeholder assumptions.
type EngineConfig struct {
	ExpansionRate     float64 `envconfig:"FORECASTIQ_ENGINE_EXPANSION_RATE" default:"0.10"`
	ContractionRate   float64 `envconfig:"FORECASTIQ_ENGINE_CONTRACTION_RATE" default:"0.05"`
	CACThresholdRatio float64 `envconfig:"FORECASTIQ_ENGINE_CAC_THRESHOLD_RATIO" default:"3"`
	ForecastMonths    int     `envconfig:"FORECASTIQ_ENGINE_FORECAST_MONTHS" default:"12"`
}

type ReportsConfig struct {
	Enabled bool `envconfig:"FORECASTIQ_REPORTS_ENABLED" default:"true"`
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"FORECASTIQ_OPENAI_API_KEY"`
	Model   string        `envconfig:"FORECASTIQ_OPENAI_MODEL" default:"gpt-4"`
	BaseURL string        `envconfig:"FORECASTIQ_OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Timeout time.Duration `envconfig:"FORECASTIQ_OPENAI_TIMEOUT" default:"30s"`
}

type RateLimitConfig struct {
	ReportWindow time.Duration `envconfig:"FORECASTIQ_RATE_LIMIT_REPORT_WINDOW" default:"1m"`
	ReportLimit  int           `envconfig:"FORECASTIQ_RATE_LIMIT_REPORT_LIMIT" default:"5"`
}
