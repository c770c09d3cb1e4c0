package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Remote document rendering service
	ReportServiceURL     string
	ReportServiceTimeout time.Duration

	// Catalog service supplying contract data for commission derivation
	CatalogServiceURL     string
	CatalogServiceTimeout time.Duration

	// Rate limit in limiter period format, e.g. "100-M" for 100 req/min
	RateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REPORT_SERVICE_URL", "")
	viper.SetDefault("REPORT_SERVICE_TIMEOUT", "10s")
	viper.SetDefault("CATALOG_SERVICE_URL", "")
	viper.SetDefault("CATALOG_SERVICE_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ReportServiceURL = viper.GetString("REPORT_SERVICE_URL")
	if cfg.ReportServiceURL == "" {
		log.Println("Warning: REPORT_SERVICE_URL not set. Exports will render locally on every request.")
	}

	reportTimeoutStr := viper.GetString("REPORT_SERVICE_TIMEOUT")
	reportTimeout, err := time.ParseDuration(reportTimeoutStr)
	if err != nil {
		reportTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for REPORT_SERVICE_TIMEOUT ('%s'). Defaulting to %s.\n", reportTimeoutStr, reportTimeout.String())
	}
	cfg.ReportServiceTimeout = reportTimeout

	cfg.CatalogServiceURL = viper.GetString("CATALOG_SERVICE_URL")
	if cfg.CatalogServiceURL == "" {
		log.Println("Warning: CATALOG_SERVICE_URL not set. Commission value derivation from contracts will fail.")
	}

	catalogTimeoutStr := viper.GetString("CATALOG_SERVICE_TIMEOUT")
	catalogTimeout, err := time.ParseDuration(catalogTimeoutStr)
	if err != nil {
		catalogTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for CATALOG_SERVICE_TIMEOUT ('%s'). Defaulting to %s.\n", catalogTimeoutStr, catalogTimeout.String())
	}
	cfg.CatalogServiceTimeout = catalogTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
