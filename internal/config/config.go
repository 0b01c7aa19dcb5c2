package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flexprice/invoicing/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Cache        CacheConfig        `validate:"required"`
	Invoice      InvoiceConfig      `validate:"required"`
	Tax          TaxConfig          `validate:"required"`
	Notification NotificationConfig `validate:"required"`
	Kafka        KafkaConfig        `validate:"required"`
	Tracing      TracingConfig      `validate:"required"`
	Sentry       SentryConfig       `validate:"required"`
	Pyroscope    PyroscopeConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local api"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required,oneof=debug info warn error"`
}

type PostgresConfig struct {
	Host                   string `validate:"required"`
	Port                   int    `validate:"required"`
	User                   string `validate:"required"`
	Password               string
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
}

type CacheConfig struct {
	Enabled           bool
	ExpirationMinutes int `mapstructure:"expiration_minutes"`
}

type InvoiceConfig struct {
	DueDays int `mapstructure:"due_days" validate:"gte=1"`
}

type TaxConfig struct {
	// Percentage is applied to the invoice subtotal, e.g. 7.5 means 7.5%
	Percentage float64 `validate:"gte=0,lte=100"`
}

type NotificationConfig struct {
	PubSub types.PubSubType `mapstructure:"pubsub" validate:"required,oneof=memory kafka"`
	Topic  string           `validate:"required"`
}

type KafkaConfig struct {
	Brokers       []string
	ClientID      string `mapstructure:"client_id"`
	ConsumerGroup string `mapstructure:"consumer_group"`
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	URLPath     string `mapstructure:"url_path"`
	AuthHeader  string `mapstructure:"auth_header"`
	Insecure    bool
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type PyroscopeConfig struct {
	Enabled         bool
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, it only seeds the environment for local runs
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicing")

	v.SetEnvPrefix("INVOICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
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
	defaults := GetDefaultConfig()

	v.SetDefault("deployment.mode", defaults.Deployment.Mode)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("postgres.host", defaults.Postgres.Host)
	v.SetDefault("postgres.port", defaults.Postgres.Port)
	v.SetDefault("postgres.user", defaults.Postgres.User)
	v.SetDefault("postgres.password", defaults.Postgres.Password)
	v.SetDefault("postgres.dbname", defaults.Postgres.DBName)
	v.SetDefault("postgres.sslmode", defaults.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", defaults.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", defaults.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", defaults.Postgres.ConnMaxLifetimeMinutes)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.expiration_minutes", defaults.Cache.ExpirationMinutes)
	v.SetDefault("invoice.due_days", defaults.Invoice.DueDays)
	v.SetDefault("tax.percentage", defaults.Tax.Percentage)
	v.SetDefault("notification.pubsub", defaults.Notification.PubSub)
	v.SetDefault("notification.topic", defaults.Notification.Topic)
	v.SetDefault("kafka.client_id", defaults.Kafka.ClientID)
	v.SetDefault("kafka.consumer_group", defaults.Kafka.ConsumerGroup)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	v.SetDefault("tracing.url_path", defaults.Tracing.URLPath)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			User:                   "invoicing",
			Password:               "invoicing",
			DBName:                 "invoicing",
			SSLMode:                "disable",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		Cache:        CacheConfig{Enabled: true, ExpirationMinutes: 30},
		Invoice:      InvoiceConfig{DueDays: types.DefaultInvoiceDueDays},
		Tax:          TaxConfig{Percentage: 0},
		Notification: NotificationConfig{PubSub: types.MemoryPubSub, Topic: "invoice_notifications"},
		Kafka:        KafkaConfig{ClientID: "invoicing", ConsumerGroup: "invoicing"},
		Tracing: TracingConfig{
			ServiceName: "invoicing",
			URLPath:     "/v1/traces",
			SampleRate:  1,
		},
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
