package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Forecast ForecastConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	SuggestionTTLSeconds int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// ForecastConfig holds the heuristic business constants the suggestion engine
// runs on. None of them are derived; they were tuned against real store data
// and can be overridden per deployment through the environment.
type ForecastConfig struct {
	// SafetyMargin pads the cold-start (sales-history-only) estimate.
	SafetyMargin float64
	// MinSuggestion is the floor applied to every computed suggestion.
	MinSuggestion int
	// IntermediateFallback and AdvancedFallback are the base quantities used
	// when a tier has no usable signal at all.
	IntermediateFallback float64
	AdvancedFallback     float64
	// Blend weights for the intermediate tier when order history is sparse.
	BlendOrdersWeight float64
	BlendSalesWeight  float64
	// Blend weights for the advanced tier. These intentionally differ from
	// the intermediate pair; do not unify them.
	AdvancedSalesWeight  float64
	AdvancedOrdersWeight float64
	// QuinzenaFactor dampens demand in the second half of the month.
	QuinzenaFactor float64
	// Order-history lookback windows, in days.
	IntermediateWindowDays int
	AdvancedWindowDays     int
	// SparseRecordThreshold is the order-history record count below which the
	// intermediate tier blends sales history into the estimate.
	SparseRecordThreshold int
	// Tier boundaries in days of order history for the store.
	IntermediateMinDays int
	AdvancedMinDays     int
	// Seasonal tweaks used by the insight fallback text generator.
	InsightWeekendBoost float64
	InsightMondayDip    float64
	InsightQuinzenaDip  float64
}

// DefaultForecast returns the stock forecast constants. Load applies these as
// viper defaults so the environment can override any single value.
func DefaultForecast() ForecastConfig {
	return ForecastConfig{
		SafetyMargin:           1.15,
		MinSuggestion:          5,
		IntermediateFallback:   15,
		AdvancedFallback:       20,
		BlendOrdersWeight:      0.6,
		BlendSalesWeight:       0.4,
		AdvancedSalesWeight:    0.3,
		AdvancedOrdersWeight:   0.7,
		QuinzenaFactor:         0.9,
		IntermediateWindowDays: 30,
		AdvancedWindowDays:     60,
		SparseRecordThreshold:  10,
		IntermediateMinDays:    7,
		AdvancedMinDays:        90,
		InsightWeekendBoost:    1.15,
		InsightMondayDip:       0.85,
		InsightQuinzenaDip:     0.88,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		fc := DefaultForecast()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "padaria")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SUGGESTION_TTL_SECONDS", 300)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("STORAGE_PREFIX", "forecasts/")
		viper.SetDefault("FORECAST_SAFETY_MARGIN", fc.SafetyMargin)
		viper.SetDefault("FORECAST_MIN_SUGGESTION", fc.MinSuggestion)
		viper.SetDefault("FORECAST_INTERMEDIATE_FALLBACK", fc.IntermediateFallback)
		viper.SetDefault("FORECAST_ADVANCED_FALLBACK", fc.AdvancedFallback)
		viper.SetDefault("FORECAST_BLEND_ORDERS_WEIGHT", fc.BlendOrdersWeight)
		viper.SetDefault("FORECAST_BLEND_SALES_WEIGHT", fc.BlendSalesWeight)
		viper.SetDefault("FORECAST_ADVANCED_SALES_WEIGHT", fc.AdvancedSalesWeight)
		viper.SetDefault("FORECAST_ADVANCED_ORDERS_WEIGHT", fc.AdvancedOrdersWeight)
		viper.SetDefault("FORECAST_QUINZENA_FACTOR", fc.QuinzenaFactor)
		viper.SetDefault("FORECAST_INTERMEDIATE_WINDOW_DAYS", fc.IntermediateWindowDays)
		viper.SetDefault("FORECAST_ADVANCED_WINDOW_DAYS", fc.AdvancedWindowDays)
		viper.SetDefault("FORECAST_SPARSE_RECORD_THRESHOLD", fc.SparseRecordThreshold)
		viper.SetDefault("FORECAST_INTERMEDIATE_MIN_DAYS", fc.IntermediateMinDays)
		viper.SetDefault("FORECAST_ADVANCED_MIN_DAYS", fc.AdvancedMinDays)
		viper.SetDefault("INSIGHT_WEEKEND_BOOST", fc.InsightWeekendBoost)
		viper.SetDefault("INSIGHT_MONDAY_DIP", fc.InsightMondayDip)
		viper.SetDefault("INSIGHT_QUINZENA_DIP", fc.InsightQuinzenaDip)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:              viper.GetBool("CACHE_ENABLED"),
				RedisURL:             viper.GetString("REDIS_URL"),
				RedisHost:            viper.GetString("REDIS_HOST"),
				RedisPort:            viper.GetString("REDIS_PORT"),
				RedisPassword:        viper.GetString("REDIS_PASSWORD"),
				RedisDB:              viper.GetInt("REDIS_DB"),
				SuggestionTTLSeconds: viper.GetInt("CACHE_SUGGESTION_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
				Prefix:    viper.GetString("STORAGE_PREFIX"),
			},
			Forecast: ForecastConfig{
				SafetyMargin:           viper.GetFloat64("FORECAST_SAFETY_MARGIN"),
				MinSuggestion:          viper.GetInt("FORECAST_MIN_SUGGESTION"),
				IntermediateFallback:   viper.GetFloat64("FORECAST_INTERMEDIATE_FALLBACK"),
				AdvancedFallback:       viper.GetFloat64("FORECAST_ADVANCED_FALLBACK"),
				BlendOrdersWeight:      viper.GetFloat64("FORECAST_BLEND_ORDERS_WEIGHT"),
				BlendSalesWeight:       viper.GetFloat64("FORECAST_BLEND_SALES_WEIGHT"),
				AdvancedSalesWeight:    viper.GetFloat64("FORECAST_ADVANCED_SALES_WEIGHT"),
				AdvancedOrdersWeight:   viper.GetFloat64("FORECAST_ADVANCED_ORDERS_WEIGHT"),
				QuinzenaFactor:         viper.GetFloat64("FORECAST_QUINZENA_FACTOR"),
				IntermediateWindowDays: viper.GetInt("FORECAST_INTERMEDIATE_WINDOW_DAYS"),
				AdvancedWindowDays:     viper.GetInt("FORECAST_ADVANCED_WINDOW_DAYS"),
				SparseRecordThreshold:  viper.GetInt("FORECAST_SPARSE_RECORD_THRESHOLD"),
				IntermediateMinDays:    viper.GetInt("FORECAST_INTERMEDIATE_MIN_DAYS"),
				AdvancedMinDays:        viper.GetInt("FORECAST_ADVANCED_MIN_DAYS"),
				InsightWeekendBoost:    viper.GetFloat64("INSIGHT_WEEKEND_BOOST"),
				InsightMondayDip:       viper.GetFloat64("INSIGHT_MONDAY_DIP"),
				InsightQuinzenaDip:     viper.GetFloat64("INSIGHT_QUINZENA_DIP"),
			},
		}
	})

	return instance
}
