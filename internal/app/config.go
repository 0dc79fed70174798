package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"mt5-data/internal/credentials"
	"mt5-data/internal/terminal"
)

// Config holds application configuration from defaults, an optional YAML file and env
type Config struct {
	CredentialsFile string        `yaml:"credentials_file" default:"mt5_credentials.json" validate:"required"`
	GatewayURL      string        `yaml:"gateway_url" default:"http://127.0.0.1:18812" validate:"required,url"`
	GatewayTimeout  time.Duration `yaml:"gateway_timeout"` // 0 = wait for the terminal
	DataDir         string        `yaml:"data_dir" default:"data" validate:"required"`
	SaveFormat      string        `yaml:"save_format" default:"csv" validate:"oneof=csv json parquet"`
	LogLevel        string        `yaml:"log_level" default:"info"` // debug | info | warn | error
	DaysBack        int           `yaml:"days_back" default:"365" validate:"min=1"`
	Instruments     []string      `yaml:"instruments" default:"[\"XAUUSD\",\"EURUSD\"]" validate:"min=1,dive,required"`
	Timeframes      []string      `yaml:"timeframes" default:"[\"M5\",\"M10\",\"M15\"]" validate:"min=1,dive,oneof=M5 M10 M15"`
	MetricsFile     string        `yaml:"metrics_file"`
	RunReport       bool          `yaml:"run_report"`
}

var validate = validator.New()

// LoadConfig reads config: struct defaults, then CONFIG_FILE (YAML) if set, then env.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.CredentialsFile = getEnv("CREDENTIALS_FILE", cfg.CredentialsFile)
	cfg.GatewayURL = getEnv("GATEWAY_URL", cfg.GatewayURL)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.SaveFormat = getEnv("SAVE_FORMAT", cfg.SaveFormat)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsFile = getEnv("METRICS_FILE", cfg.MetricsFile)
	if v := os.Getenv("INSTRUMENTS"); v != "" {
		cfg.Instruments = splitList(v)
	}
	if v := os.Getenv("TIMEFRAMES"); v != "" {
		cfg.Timeframes = splitList(v)
	}
	if v := os.Getenv("DAYS_BACK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DAYS_BACK %q: %w", v, err)
		}
		cfg.DaysBack = n
	}
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse GATEWAY_TIMEOUT %q: %w", v, err)
		}
		cfg.GatewayTimeout = d
	}
	if v := os.Getenv("RUN_REPORT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse RUN_REPORT %q: %w", v, err)
		}
		cfg.RunReport = b
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) normalize() {
	c.SaveFormat = strings.ToLower(strings.TrimSpace(c.SaveFormat))
	for i := range c.Instruments {
		c.Instruments[i] = strings.ToUpper(strings.TrimSpace(c.Instruments[i]))
	}
	for i := range c.Timeframes {
		c.Timeframes[i] = strings.ToUpper(strings.TrimSpace(c.Timeframes[i]))
	}
}

// Validate checks field constraints and reports them as one error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TimeframeList resolves the configured labels.
func (c *Config) TimeframeList() ([]terminal.Timeframe, error) {
	return terminal.ParseTimeframes(c.Timeframes)
}

// CredentialsPath falls back to the default file name.
func (c *Config) CredentialsPath() string {
	if c.CredentialsFile == "" {
		return credentials.DefaultFile
	}
	return c.CredentialsFile
}
