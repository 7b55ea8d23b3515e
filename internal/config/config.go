package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Loaded once at startup and
// passed explicitly to every component constructor.
type Config struct {
	Source   SourceConfig
	VIES     VIESConfig
	Report   ReportConfig
	Database DatabaseConfig
	Archive  ArchiveConfig
	Notify   NotifyConfig
	Log      LogConfig
}

// SourceConfig describes the delimited input.
type SourceConfig struct {
	// Path names a single input file or a directory of *.csv files.
	Path      string `mapstructure:"path"`
	Separator string `mapstructure:"separator"`
	Header    bool   `mapstructure:"header"`
}

// SeparatorRune returns the field separator as a rune, defaulting to ';'.
func (s *SourceConfig) SeparatorRune() rune {
	if s.Separator == "" {
		return ';'
	}
	return []rune(s.Separator)[0]
}

// VIESConfig holds the remote validation service settings.
type VIESConfig struct {
	CheckVatEndpoint string `mapstructure:"check_vat_endpoint"`
	StatusEndpoint   string `mapstructure:"status_endpoint"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	CheckStatusFirst bool   `mapstructure:"check_status_first"`
}

// Timeout returns the per-request timeout, defaulting to 20s.
func (v *VIESConfig) Timeout() time.Duration {
	if v.TimeoutSecs <= 0 {
		return 20 * time.Second
	}
	return time.Duration(v.TimeoutSecs) * time.Second
}

// ReportConfig holds report artifact settings.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Title     string `mapstructure:"title"`
	Console   bool   `mapstructure:"console"`
	XLSX      bool   `mapstructure:"xlsx"`
	CSV       bool   `mapstructure:"csv"`
}

// DatabaseConfig holds the optional PostgreSQL result store settings.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ArchiveConfig holds the optional S3 report archive settings.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// NotifyConfig holds run-completion notification settings.
type NotifyConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from the given file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Source defaults
	v.SetDefault("source.path", "data/input")
	v.SetDefault("source.separator", ";")
	v.SetDefault("source.header", false)

	// VIES defaults
	v.SetDefault("vies.check_vat_endpoint", "https://ec.europa.eu/taxation_customs/vies/services/checkVatService")
	v.SetDefault("vies.status_endpoint", "https://ec.europa.eu/taxation_customs/vies/services/checkStatusService")
	v.SetDefault("vies.timeout_secs", 20)
	v.SetDefault("vies.check_status_first", true)

	// Report defaults
	v.SetDefault("report.output_dir", "data/output")
	v.SetDefault("report.title", "EU VAT validation report")
	v.SetDefault("report.console", true)
	v.SetDefault("report.xlsx", false)
	v.SetDefault("report.csv", false)

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "vatctl")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "vatctl_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open", 5)
	v.SetDefault("database.max_idle", 2)

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "eu-west-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "vat-reports")
	v.SetDefault("archive.endpoint", "")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "eu-west-1")
	v.SetDefault("notify.from_name", "vat-controller")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	cfg.Source = SourceConfig{
		Path:      v.GetString("source.path"),
		Separator: v.GetString("source.separator"),
		Header:    v.GetBool("source.header"),
	}
	cfg.VIES = VIESConfig{
		CheckVatEndpoint: v.GetString("vies.check_vat_endpoint"),
		StatusEndpoint:   v.GetString("vies.status_endpoint"),
		TimeoutSecs:      v.GetInt("vies.timeout_secs"),
		CheckStatusFirst: v.GetBool("vies.check_status_first"),
	}
	cfg.Report = ReportConfig{
		OutputDir: v.GetString("report.output_dir"),
		Title:     v.GetString("report.title"),
		Console:   v.GetBool("report.console"),
		XLSX:      v.GetBool("report.xlsx"),
		CSV:       v.GetBool("report.csv"),
	}
	cfg.Database = DatabaseConfig{
		Enabled:  v.GetBool("database.enabled"),
		Host:     v.GetString("database.host"),
		Port:     v.GetInt("database.port"),
		User:     v.GetString("database.user"),
		Password: v.GetString("database.password"),
		Name:     v.GetString("database.name"),
		SSLMode:  v.GetString("database.sslmode"),
		MaxOpen:  v.GetInt("database.max_open"),
		MaxIdle:  v.GetInt("database.max_idle"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Prefix:    v.GetString("archive.prefix"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		ToAddress:   v.GetString("notify.to_address"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
		File:  v.GetString("log.file"),
	}

	return cfg, nil
}
