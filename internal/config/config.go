package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tagihin/tagihin/internal/types"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Midtrans   MidtransConfig
	Billing    BillingConfig
	Cache      CacheConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	// Secret signs and verifies the HS256 session tokens
	Secret string `validate:"required"`
}

type MidtransConfig struct {
	// ServerKey doubles as the basic-auth username and the webhook
	// signature secret. Empty key disables the gateway.
	ServerKey    string
	IsProduction bool
	// CallbackBaseURL is where the hosted payment page sends the user back to
	CallbackBaseURL string
}

type BillingConfig struct {
	// AutoBillLeadDays is how many days before plan expiry the renewal
	// invoice is raised
	AutoBillLeadDays int
	// AutoBillSchedule is the cron expression for the daily sweep
	AutoBillSchedule string
}

type CacheConfig struct {
	Enabled bool
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tagihin")

	v.SetEnvPrefix("TAGIHIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("billing.autobillleaddays", 14)
	v.SetDefault("billing.autobillschedule", "0 2 * * *")
	v.SetDefault("cache.enabled", true)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests. It is not validated on purpose.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Billing: BillingConfig{
			AutoBillLeadDays: 14,
			AutoBillSchedule: "0 2 * * *",
		},
		Cache: CacheConfig{Enabled: true},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

const (
	snapBaseURLProduction = "https://app.midtrans.com/snap/v1"
	snapBaseURLSandbox    = "https://app.sandbox.midtrans.com/snap/v1"
	apiBaseURLProduction  = "https://api.midtrans.com/v2"
	apiBaseURLSandbox     = "https://api.sandbox.midtrans.com/v2"
)

// SnapBaseURL returns the hosted-checkout API base for the configured environment
func (c MidtransConfig) SnapBaseURL() string {
	if c.IsProduction {
		return snapBaseURLProduction
	}
	return snapBaseURLSandbox
}

// APIBaseURL returns the core API base for the configured environment
func (c MidtransConfig) APIBaseURL() string {
	if c.IsProduction {
		return apiBaseURLProduction
	}
	return apiBaseURLSandbox
}
