package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"task-tracker.com/task-tracker/internal/constants"
)

type Config struct {
	AppURL                 string `yaml:"app_url"`
	DatabaseDriver         string `yaml:"database_driver"`
	DatabaseDSN            string `yaml:"database_dsn"`
	RedisAddr              string `yaml:"redis_addr"`
	RedisSequenceKey       string `yaml:"redis_sequence_key"`
	RateLimit              int    `yaml:"rate_limit_per_minute"`
	IPRateLimit            int    `yaml:"ip_rate_limit_per_minute"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`

	AuthSecret          string `yaml:"auth_secret"`
	AuthTokenTTLMinutes int    `yaml:"auth_token_ttl_minutes"`
	AuthAllowUIDTokens  bool   `yaml:"auth_allow_uid_tokens"`

	UploadDir     string `yaml:"upload_dir"`
	UploadBaseURL string `yaml:"upload_base_url"`
	UploadMaxMB   int    `yaml:"upload_max_mb"`

	EmployeeIDStart     int    `yaml:"employee_id_start"`
	DefaultUserPassword string `yaml:"default_user_password"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads the configuration from the environment. When CONFIG_FILE points
// at a YAML file, keys present in it override the environment values.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	redisAddr := ""
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:              fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:      getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:         getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:           redisAddr,
		RedisSequenceKey:    getEnv("REDIS_SEQUENCE_KEY", "employee_id_sequence"),
		AuthSecret:          os.Getenv("AUTH_SECRET"),
		AuthAllowUIDTokens:  strings.EqualFold(os.Getenv("AUTH_ALLOW_UID_TOKENS"), "true"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:       getEnv("UPLOAD_BASE_URL", fmt.Sprintf("http://%s:%s/uploads", appHost, appPort)),
		DefaultUserPassword: getEnv("DEFAULT_USER_PASSWORD", "receiptbranch123"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
	}

	ints := []struct {
		dst        *int
		key        string
		defaultVal int
	}{
		{&cfg.RateLimit, "RATE_LIMIT_PER_MINUTE", 60},
		{&cfg.IPRateLimit, "IP_RATE_LIMIT_PER_MINUTE", 300},
		{&cfg.ShutdownTimeoutSeconds, "SHUTDOWN_TIMEOUT_SECONDS", 20},
		{&cfg.AuthTokenTTLMinutes, "AUTH_TOKEN_TTL_MINUTES", 60},
		{&cfg.UploadMaxMB, "UPLOAD_MAX_MB", 10},
		{&cfg.EmployeeIDStart, "EMPLOYEE_ID_START", constants.DefaultEmployeeIDStart},
	}
	for _, v := range ints {
		i, err := getEnvAsInt(v.key, v.defaultVal)
		if err != nil {
			return Config{}, err
		}
		*v.dst = i
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.IPRateLimit <= 0 {
		return errors.New("IP_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.AuthSecret == "" {
		return errors.New("AUTH_SECRET must not be empty")
	}
	if cfg.AuthTokenTTLMinutes <= 0 {
		return errors.New("AUTH_TOKEN_TTL_MINUTES must be greater than 0")
	}
	if cfg.UploadMaxMB <= 0 {
		return errors.New("UPLOAD_MAX_MB must be greater than 0")
	}
	if cfg.EmployeeIDStart < 0 {
		return errors.New("EMPLOYEE_ID_START must not be negative")
	}
	if cfg.DefaultUserPassword == "" {
		return errors.New("DEFAULT_USER_PASSWORD must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}
