package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/opsdesk/portal/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	Postgres    PostgresConfig    `validate:"required"`
	Sentry      SentryConfig      `validate:"omitempty"`
	Cache       CacheConfig       `validate:"omitempty"`
	Billing     BillingConfig     `validate:"required"`
	Invoice     InvoiceConfig     `validate:"required"`
	EffortSheet EffortSheetConfig `validate:"omitempty"`
	Recruitment RecruitmentConfig `validate:"omitempty"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// AllowedOrigins limits CORS to the listed origins; empty allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// SlowQueryThreshold logs queries running longer at warn level; zero disables it
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled bool
	// TTL is how long cached lookups (salary configuration, billing details) live
	TTL time.Duration
}

// BillingConfig holds the inputs of the billing calculator that are not
// stored per client
type BillingConfig struct {
	// TaxRate is the domestic (IGST) rate as a fraction, e.g. "0.18"
	TaxRate string `mapstructure:"tax_rate" validate:"required,numeric"`
	// RoundingPlaces is the precision every amount is rounded to
	RoundingPlaces int32 `mapstructure:"rounding_places" validate:"min=0,max=4"`
	// DefaultMonthsBack is used when a request does not say which term to bill
	DefaultMonthsBack int `mapstructure:"default_months_back" validate:"min=0"`
	// Timezone decides what "today" is for billing and effort sync
	Timezone string `validate:"omitempty"`
}

type InvoiceConfig struct {
	// MailCC is always copied on invoice mails
	MailCC string `mapstructure:"mail_cc" validate:"omitempty,email"`
	// NumberPrefix is prepended to generated invoice numbers
	NumberPrefix string `mapstructure:"number_prefix"`
}

type EffortSheetConfig struct {
	// CredentialsFile is a google service account json file
	CredentialsFile string `mapstructure:"credentials_file"`
	// Schedule is a cron spec; the scheduler is disabled when empty
	Schedule string
	// DefaultStartColumn is where member rows start, DefaultEndColumn the
	// last fixed column before sub project columns
	DefaultStartColumn string `mapstructure:"default_start_column"`
	DefaultEndColumn   string `mapstructure:"default_end_column"`
	// MaxColumn bounds the header scan for sub project columns
	MaxColumn string            `mapstructure:"max_column"`
	Columns   EffortSheetColumn `mapstructure:"columns"`
	// Workers is how many projects one run syncs at a time
	Workers int `mapstructure:"workers" validate:"min=0"`
	// ReadsPerMinute throttles sheet reads; zero disables throttling
	ReadsPerMinute int `mapstructure:"reads_per_minute" validate:"min=0"`
}

// EffortSheetColumn holds the (lower case) header names of the effort sheet
type EffortSheetColumn struct {
	TeamMemberName string `mapstructure:"team_member_name"`
	BillableEffort string `mapstructure:"billable_effort"`
	StartDate      string `mapstructure:"start_date"`
	EndDate        string `mapstructure:"end_date"`
}

type RecruitmentConfig struct {
	// VerifiedApplicationsFrom is the first day verified applications are counted from
	VerifiedApplicationsFrom string `mapstructure:"verified_applications_from" validate:"omitempty,datetime=2006-01-02"`
	// ReportCardDays is the look back window of the report card
	ReportCardDays int `mapstructure:"report_card_days" validate:"min=0"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/portal")

	v.SetEnvPrefix("PORTAL")
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
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", d.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", d.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime", d.Postgres.ConnMaxLifetime)
	v.SetDefault("postgres.slow_query_threshold", d.Postgres.SlowQueryThreshold)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("billing.tax_rate", d.Billing.TaxRate)
	v.SetDefault("billing.rounding_places", d.Billing.RoundingPlaces)
	v.SetDefault("billing.default_months_back", d.Billing.DefaultMonthsBack)
	v.SetDefault("billing.timezone", d.Billing.Timezone)
	v.SetDefault("effortsheet.default_start_column", d.EffortSheet.DefaultStartColumn)
	v.SetDefault("effortsheet.default_end_column", d.EffortSheet.DefaultEndColumn)
	v.SetDefault("effortsheet.max_column", d.EffortSheet.MaxColumn)
	v.SetDefault("effortsheet.workers", d.EffortSheet.Workers)
	v.SetDefault("effortsheet.reads_per_minute", d.EffortSheet.ReadsPerMinute)
	v.SetDefault("effortsheet.columns.team_member_name", d.EffortSheet.Columns.TeamMemberName)
	v.SetDefault("effortsheet.columns.billable_effort", d.EffortSheet.Columns.BillableEffort)
	v.SetDefault("effortsheet.columns.start_date", d.EffortSheet.Columns.StartDate)
	v.SetDefault("effortsheet.columns.end_date", d.EffortSheet.Columns.EndDate)
	v.SetDefault("recruitment.report_card_days", d.Recruitment.ReportCardDays)
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
			Port:               5432,
			SSLMode:            "disable",
			MaxOpenConns:       20,
			MaxIdleConns:       5,
			ConnMaxLifetime:    30 * time.Minute,
			SlowQueryThreshold: 500 * time.Millisecond,
		},
		Cache: CacheConfig{Enabled: true, TTL: 10 * time.Minute},
		Billing: BillingConfig{
			TaxRate:           "0.18",
			RoundingPlaces:    2,
			DefaultMonthsBack: 1,
			Timezone:          "Asia/Kolkata",
		},
		EffortSheet: EffortSheetConfig{
			DefaultStartColumn: "C",
			DefaultEndColumn:   "G",
			MaxColumn:          "Z",
			Workers:            4,
			ReadsPerMinute:     60,
			Columns: EffortSheetColumn{
				TeamMemberName: "team member",
				BillableEffort: "billable effort",
				StartDate:      "start date",
				EndDate:        "end date",
			},
		},
		Recruitment: RecruitmentConfig{ReportCardDays: 23},
	}
}

// TaxRateDecimal returns the configured domestic tax rate
func (c BillingConfig) TaxRateDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(c.TaxRate)
}

// Location returns the billing timezone
func (c BillingConfig) Location() (*time.Location, error) {
	return types.LoadLocation(c.Timezone)
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
