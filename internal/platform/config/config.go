package config

import (
	"log"
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

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Per-attempt ceiling on store operations. The retry policy bounds
	// attempt count; this bounds wall-clock time per attempt.
	DBOpTimeout time.Duration

	// External billing API (WHMCS-compatible action endpoint)
	WHMCSAPIURL     string `mapstructure:"WHMCS_API_URL"`
	WHMCSIdentifier string `mapstructure:"WHMCS_IDENTIFIER"`
	WHMCSSecret     string `mapstructure:"WHMCS_SECRET"`

	// External provisioning API (Enhance control panel)
	EnhanceAPIURL      string `mapstructure:"ENHANCE_API_URL"`
	EnhanceOrgID       string `mapstructure:"ENHANCE_ORG_ID"`
	EnhanceAccessToken string `mapstructure:"ENHANCE_ACCESS_TOKEN"`

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "portal-backend")
	viper.SetDefault("DB_OP_TIMEOUT", "10s")
	viper.SetDefault("WHMCS_API_URL", "")
	viper.SetDefault("WHMCS_IDENTIFIER", "")
	viper.SetDefault("WHMCS_SECRET", "")
	viper.SetDefault("ENHANCE_API_URL", "")
	viper.SetDefault("ENHANCE_ORG_ID", "")
	viper.SetDefault("ENHANCE_ACCESS_TOKEN", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "portal-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	dbOpTimeoutStr := viper.GetString("DB_OP_TIMEOUT")
	dbOpTimeout, err := time.ParseDuration(dbOpTimeoutStr)
	if err != nil {
		dbOpTimeout = 10 * time.Second
		if dbOpTimeoutStr != "" {
			log.Printf("Warning: Invalid value for DB_OP_TIMEOUT ('%s'). Defaulting to %s.\n", dbOpTimeoutStr, dbOpTimeout.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.DBOpTimeout = dbOpTimeout

	cfg.WHMCSAPIURL = viper.GetString("WHMCS_API_URL")
	cfg.WHMCSIdentifier = viper.GetString("WHMCS_IDENTIFIER")
	cfg.WHMCSSecret = viper.GetString("WHMCS_SECRET")
	if cfg.WHMCSAPIURL == "" {
		log.Println("Warning: WHMCS_API_URL not set. Billing pass-through will not function.")
	}

	cfg.EnhanceAPIURL = viper.GetString("ENHANCE_API_URL")
	cfg.EnhanceOrgID = viper.GetString("ENHANCE_ORG_ID")
	cfg.EnhanceAccessToken = viper.GetString("ENHANCE_ACCESS_TOKEN")
	if cfg.EnhanceAPIURL == "" {
		log.Println("Warning: ENHANCE_API_URL not set. Provisioning pass-through will not function.")
	}

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
