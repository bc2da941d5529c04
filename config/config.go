package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	Storage     StorageConfig  `yaml:"storage"`
	Mail        MailConfig     `yaml:"mail"`
	Geocoder    GeocoderConfig `yaml:"geocoder"`
	Sync        SyncConfig     `yaml:"sync"`
	Technicians []string       `yaml:"technicians"`
	Log         LogConfig      `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	MaxUploadMB     int     `yaml:"max_upload_mb"`
}

// StorageConfig selects the record store backend and where media lives.
type StorageConfig struct {
	Driver                 string `yaml:"driver"` // csv, sqlite or postgres
	DataDir                string `yaml:"data_dir"`
	MediaRoot              string `yaml:"media_root"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// MailConfig holds the SMTP settings for job confirmations.
type MailConfig struct {
	Enabled            bool   `yaml:"enabled"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	AdminAddress       string `yaml:"admin_address"`
	InternalSummary    bool   `yaml:"internal_summary"`
	MaxAttachmentBytes int64  `yaml:"max_attachment_bytes"`
}

// GeocoderConfig holds the address lookup settings.
type GeocoderConfig struct {
	Enabled           bool          `yaml:"enabled"`
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	TimeoutSeconds    int           `yaml:"timeout_seconds"`
	Timeout           time.Duration `yaml:"-"` // Ignored by YAML parser
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// SyncConfig holds the git remote used to share tables and media.
type SyncConfig struct {
	Enabled    bool   `yaml:"enabled"`
	RepoDir    string `yaml:"repo_dir"`
	Remote     string `yaml:"remote"`
	Branch     string `yaml:"branch"`
	User       string `yaml:"user"`
	Token      string `yaml:"token"`
	UserName   string `yaml:"user_name"`
	UserEmail  string `yaml:"user_email"`
	RawBaseURL string `yaml:"raw_base_url"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultTechnicians is used when the config lists none.
var DefaultTechnicians = []string{"Adonai Garcia", "Miki Horvath"}

// Load reads the configuration from the given path. Values from a .env file
// or the environment override the secrets in the YAML file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
		cfg.Mail.Password = v
	}
	if v, ok := os.LookupEnv("GIT_TOKEN"); ok {
		cfg.Sync.Token = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		cfg.Storage.DSN = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 5
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 10
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}
	if cfg.Server.MaxUploadMB <= 0 {
		cfg.Server.MaxUploadMB = 64
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "csv"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "."
	}
	if cfg.Storage.MediaRoot == "" {
		cfg.Storage.MediaRoot = "media/customers"
	}

	if cfg.Mail.Port <= 0 {
		cfg.Mail.Port = 465
	}
	if cfg.Mail.MaxAttachmentBytes <= 0 {
		cfg.Mail.MaxAttachmentBytes = 20 << 20
	}

	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "service-logger"
	}
	if cfg.Geocoder.TimeoutSeconds <= 0 {
		cfg.Geocoder.TimeoutSeconds = 10
	}
	cfg.Geocoder.Timeout = time.Duration(cfg.Geocoder.TimeoutSeconds) * time.Second
	if cfg.Geocoder.RequestsPerSecond <= 0 {
		cfg.Geocoder.RequestsPerSecond = 1
	}

	if cfg.Sync.RepoDir == "" {
		cfg.Sync.RepoDir = cfg.Storage.DataDir
	}
	if cfg.Sync.Remote == "" {
		cfg.Sync.Remote = "origin"
	}
	if cfg.Sync.Branch == "" {
		cfg.Sync.Branch = "main"
	}
	if cfg.Sync.User == "" {
		cfg.Sync.User = "x-access-token"
	}
	if cfg.Sync.UserName == "" {
		cfg.Sync.UserName = "Service Logger"
	}

	if len(cfg.Technicians) == 0 {
		log.Printf("technicians is not set; defaulting to %v", DefaultTechnicians)
		cfg.Technicians = append([]string(nil), DefaultTechnicians...)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
