package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at filepath, expands ${VAR} references from the
// environment, applies defaults and validates the result. The returned value
// is meant to be built once at startup and handed to every component.
func Load(filepath string, envFiles ...string) (*ServiceConf, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(content))))
}

// Parse decodes YAML content into a validated ServiceConf.
func Parse(content []byte) (*ServiceConf, error) {
	var conf ServiceConf
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

type ServiceConf struct {
	Server             ServerConf             `yaml:"server"`
	Database           DatabaseConf           `yaml:"database"`
	Redis              RedisConf              `yaml:"redis"`
	Blob               BlobConf               `yaml:"blob"`
	Auth               AuthConf               `yaml:"auth"`
	Quota              QuotaConf              `yaml:"quota"`
	Download           DownloadConf           `yaml:"download"`
	CORS               CORSConf               `yaml:"cors"`
	RateLimit          []RateLimitConf        `yaml:"rate_limit"`
	Logger             LoggerConf             `yaml:"logger"`
	LoginProtection    LoginProtectionConf    `yaml:"login_protection"`
	RegisterProtection RegisterProtectionConf `yaml:"register_protection"`
}

type ServerConf struct {
	Addr        string `yaml:"addr"`
	PublicURL   string `yaml:"public_url"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

type DatabaseConf struct {
	Driver     string `yaml:"driver"` // mysql | sqlite
	SQLitePath string `yaml:"sqlite_path"`
	DBName     string `yaml:"db_name"`
	IP         string `yaml:"ip"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
}

type RedisConf struct {
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConf) Enabled() bool {
	return r.IP != ""
}

type BlobConf struct {
	Driver string `yaml:"driver"` // local | s3
	Root   string `yaml:"root"`
	S3     S3Conf `yaml:"s3"`
}

type S3Conf struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	Prefix       string `yaml:"prefix"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type AuthConf struct {
	MaxFailedAttempts int `yaml:"max_failed_attempts"`
	WindowHours       int `yaml:"window_hours"`
	RetentionDays     int `yaml:"retention_days"`
	LockTTLSeconds    int `yaml:"lock_ttl_seconds"`
}

func (a AuthConf) Window() time.Duration {
	return time.Duration(a.WindowHours) * time.Hour
}

func (a AuthConf) Retention() time.Duration {
	return time.Duration(a.RetentionDays) * 24 * time.Hour
}

func (a AuthConf) LockTTL() time.Duration {
	return time.Duration(a.LockTTLSeconds) * time.Second
}

type QuotaConf struct {
	ChunkSeconds    int            `yaml:"chunk_seconds"`
	EnforceOnUpload bool           `yaml:"enforce_on_upload"`
	TierLimits      map[string]int `yaml:"tier_limits"`
}

type DownloadConf struct {
	LinkSecret     string `yaml:"link_secret"`
	LinkTTLSeconds int    `yaml:"link_ttl_seconds"`
}

func (d DownloadConf) LinkTTL() time.Duration {
	return time.Duration(d.LinkTTLSeconds) * time.Second
}

type LoginProtectionConf struct {
	WindowSeconds     int `yaml:"window_seconds"`
	Limit             int `yaml:"limit"`
	BlockMinDuration  int `yaml:"block_min_duration"`
	BlockHourDuration int `yaml:"block_hour_duration"`
	LevelDuration     int `yaml:"level_duration"`
}

type RegisterProtectionConf struct {
	BlockMinutes int `yaml:"block_minutes"`
}

type CORSConf struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

type RateLimitConf struct {
	Path          string `yaml:"path"`
	WindowSeconds int    `yaml:"window_seconds"`
	Limit         int64  `yaml:"limit"`
}

type LoggerConf struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Stdout     bool   `yaml:"stdout"`
}

var defaultTierLimits = map[string]int{
	"free":    20 * 60,
	"premium": 20 * 60 * 60,
	"pro":     200 * 60 * 60,
}

func (c *ServiceConf) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0:5000"
	}
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = 512
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "righttorecord.db"
	}

	if c.Blob.Driver == "" {
		c.Blob.Driver = "local"
	}
	if c.Blob.Driver == "local" && c.Blob.Root == "" {
		c.Blob.Root = "righttorecord_data"
	}

	if c.Auth.MaxFailedAttempts == 0 {
		c.Auth.MaxFailedAttempts = 5
	}
	if c.Auth.WindowHours == 0 {
		c.Auth.WindowHours = 24
	}
	if c.Auth.RetentionDays == 0 {
		c.Auth.RetentionDays = 7
	}
	if c.Auth.LockTTLSeconds == 0 {
		c.Auth.LockTTLSeconds = 30
	}

	if c.Quota.ChunkSeconds == 0 {
		c.Quota.ChunkSeconds = 15
	}
	limits := make(map[string]int, len(defaultTierLimits))
	for tier, limit := range defaultTierLimits {
		limits[tier] = limit
	}
	for tier, limit := range c.Quota.TierLimits {
		limits[tier] = limit
	}
	c.Quota.TierLimits = limits

	if c.Download.LinkTTLSeconds == 0 {
		c.Download.LinkTTLSeconds = 3600
	}
}

// Validate rejects configurations the services cannot run with.
func (c *ServiceConf) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Blob.Driver {
	case "local":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return errors.New("blob.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported blob driver %q", c.Blob.Driver)
	}

	if c.Auth.MaxFailedAttempts < 0 || c.Auth.WindowHours < 0 || c.Auth.RetentionDays < 0 || c.Auth.LockTTLSeconds < 0 {
		return errors.New("auth settings must be positive")
	}
	if c.Quota.ChunkSeconds < 0 {
		return errors.New("quota.chunk_seconds must be positive")
	}
	for tier, limit := range c.Quota.TierLimits {
		if limit <= 0 {
			return fmt.Errorf("quota.tier_limits.%s must be greater than zero", tier)
		}
	}
	if c.Download.LinkSecret == "" && c.Blob.Driver == "local" {
		return errors.New("download.link_secret is required for the local blob driver")
	}
	return nil
}
