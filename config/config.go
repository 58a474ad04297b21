package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve in minimal images

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port        string
		APIPrefix   string
		CORSOrigins []string
		Location    *time.Location
	}
	Database struct {
		Driver       string
		DSN          string
		Host         string
		Port         string
		User         string
		Password     string
		Name         string
		MaxOpenConns int
		MaxIdleConns int
	}
	JWT struct {
		Secret        string
		AccessTTL     time.Duration
		RefreshTTL    time.Duration
		SigningMethod string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	S3 struct {
		Region        string
		Bucket        string
		CloudFrontURL string
	}
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// Load reads .env (if present), then an optional config.yml under ./config,
// then environment variables. Environment wins.
func Load() (*Config, error) {
	// .env is optional in containers
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("APP_TIMEZONE", "Asia/Baku")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.App.Port = v.GetString("APP_PORT")
	cfg.App.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")
	cfg.App.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	if len(cfg.App.CORSOrigins) == 0 {
		cfg.App.CORSOrigins = defaultOrigins
	}
	loc, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	cfg.App.Location = loc

	cfg.Database.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.Database.DSN = v.GetString("DB_DSN")
	cfg.Database.Host = v.GetString("DB_HOST")
	cfg.Database.Port = v.GetString("DB_PORT")
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
		if cfg.Database.Driver == "mysql" {
			cfg.Database.Port = "3306"
		}
	}
	cfg.Database.User = v.GetString("DB_USER")
	cfg.Database.Password = v.GetString("DB_PASSWORD")
	cfg.Database.Name = v.GetString("DB_NAME")
	cfg.Database.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")

	cfg.JWT.Secret = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.SigningMethod = v.GetString("JWT_ALGORITHM")
	cfg.JWT.AccessTTL = time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute
	cfg.JWT.RefreshTTL = time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRE_DAYS")) * 24 * time.Hour

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.Format = v.GetString("LOG_FORMAT")

	cfg.S3.Region = v.GetString("S3_REGION")
	if cfg.S3.Region == "" {
		cfg.S3.Region = v.GetString("AWS_REGION")
	}
	cfg.S3.Bucket = v.GetString("S3_BUCKET")
	cfg.S3.CloudFrontURL = strings.TrimRight(v.GetString("CLOUDFRONT_URL"), "/")

	return cfg, cfg.Validate()
}

// Validate reports configuration the server cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY must be set and non-empty")
	}
	if c.JWT.SigningMethod != "HS256" && c.JWT.SigningMethod != "HS384" && c.JWT.SigningMethod != "HS512" {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWT.SigningMethod)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.DSN == "" && (c.Database.User == "" || c.Database.Name == "") {
			return errors.New("DB_USER and DB_NAME must be set (or DB_DSN)")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			return errors.New("DB_DSN must point at a sqlite file")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
