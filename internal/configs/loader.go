package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file read before environment overrides.
const ConfigFileEnv = "GAINERS_CONFIG"

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file named by GAINERS_CONFIG, and the environment (including .env or
// the given env files). The result is validated.
func Load(envFiles ...string) (*Config, error) {
	// .env is optional, explicitly named files are not
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := &Config{}
	if path := os.Getenv(ConfigFileEnv); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file and expands ${VAR} references.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []string
	var err error

	if c.PageSize, err = getEnvAsInt("PAGE_SIZE", c.PageSize); err != nil {
		errs = append(errs, err.Error())
	}
	if c.TopN, err = getEnvAsInt("TOP_N", c.TopN); err != nil {
		errs = append(errs, err.Error())
	}

	c.Source.Name = strings.ToLower(getEnv("MARKET_SOURCE", c.Source.Name))
	// 每个行情源只读取自己的地址
	switch c.Source.Name {
	case SourceBinance:
		c.Source.BaseURL = getEnv("BINANCE_BASE_URL", c.Source.BaseURL)
	case SourceCoinGecko, "":
		c.Source.BaseURL = getEnv("COINGECKO_BASE_URL", c.Source.BaseURL)
	}
	c.Source.UserAgent = getEnv("USER_AGENT", c.Source.UserAgent)
	if c.Source.Timeout, err = getEnvAsDuration("HTTP_TIMEOUT", c.Source.Timeout); err != nil {
		errs = append(errs, err.Error())
	}

	c.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", c.Store.Backend))
	c.Store.Dir = getEnv("STORE_DIR", c.Store.Dir)
	c.Store.DSN = getEnv("STORE_DSN", c.Store.DSN)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s", valueStr, key)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value '%s' for key %s", valueStr, key)
	}
	return value, nil
}
