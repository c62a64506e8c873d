package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type UpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	RenewInterval string `yaml:"renew_interval"`
	RetryInterval string `yaml:"retry_interval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RememberConfig struct {
	TTL string `yaml:"ttl"`
}

type CasbinConfig struct {
	ModelPath  string `yaml:"model_path"`
	PolicyPath string `yaml:"policy_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Remember RememberConfig `yaml:"remember"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	UpstreamBaseURL  string
	UpstreamTimeout  time.Duration
	RenewInterval    time.Duration
	RetryInterval    time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RememberTTL      time.Duration
	CasbinModelPath  string
	CasbinPolicyPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config file and applies environment overrides for the
// deployment-specific values.
func Load() (*Config, error) {
	return LoadFrom(env("MEMBERGATE_CONFIG", "config/config.yml"))
}

// LoadFrom reads a specific config file path.
func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout, err := time.ParseDuration(configFile.Upstream.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	renew, err := time.ParseDuration(configFile.Session.RenewInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid session renew interval: %w", err)
	}

	retry, err := time.ParseDuration(configFile.Session.RetryInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid session retry interval: %w", err)
	}

	rememberTTL, err := time.ParseDuration(configFile.Remember.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid remember TTL: %w", err)
	}

	return &Config{
		Port:             env("PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode:          configFile.App.GinMode,
		UpstreamBaseURL:  env("UPSTREAM_BASE_URL", configFile.Upstream.BaseURL),
		UpstreamTimeout:  timeout,
		RenewInterval:    renew,
		RetryInterval:    retry,
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		RememberTTL:      rememberTTL,
		CasbinModelPath:  configFile.Casbin.ModelPath,
		CasbinPolicyPath: configFile.Casbin.PolicyPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
