package config

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

	apperrors "hrmon/internal/platform/errors"
)

type Scan struct {
	Timeout time.Duration `yaml:"timeout"` // 0 waits until a device is found
	Address string        `yaml:"address"` // optional peripheral address filter
	Name    string        `yaml:"name"`    // optional local name filter
}

type Chart struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Theme  string `yaml:"theme"`
}

type Web struct {
	Addr        string        `yaml:"addr"`
	OpenBrowser bool          `yaml:"open_browser"`
	Refresh     time.Duration `yaml:"refresh"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Guide struct {
	PagesFile string `yaml:"pages_file"`
}

type Config struct {
	Onboarding bool  `yaml:"onboarding"`
	MaxSamples int   `yaml:"max_samples"`
	Simulate   bool  `yaml:"simulate"`
	Scan       Scan  `yaml:"scan"`
	Chart      Chart `yaml:"chart"`
	Web        Web   `yaml:"web"`
	Log        Log   `yaml:"log"`
	Guide      Guide `yaml:"guide"`
}

func Default() Config {
	return Config{
		Onboarding: true,
		MaxSamples: 3600,
		Chart:      Chart{Width: 900, Height: 500, Theme: "macarons"},
		Web:        Web{Addr: "localhost:8080", OpenBrowser: true, Refresh: 2 * time.Second},
		Log:        Log{Level: "info", File: "logs/hrmon.log"},
	}
}

// New loads configuration from defaults, the optional YAML file at path, an
// optional .env file in the working directory and HRMON_* variables, in that
// order of precedence.
func New(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		payload, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(payload, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("HRMON_ONBOARDING"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: HRMON_ONBOARDING=%q", apperrors.ErrInvalidInput, v)
		}
		cfg.Onboarding = b
	}
	if v, ok := lookup("HRMON_SIMULATE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: HRMON_SIMULATE=%q", apperrors.ErrInvalidInput, v)
		}
		cfg.Simulate = b
	}
	if v, ok := lookup("HRMON_MAX_SAMPLES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HRMON_MAX_SAMPLES=%q", apperrors.ErrInvalidInput, v)
		}
		cfg.MaxSamples = n
	}
	if v, ok := lookup("HRMON_SCAN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: HRMON_SCAN_TIMEOUT=%q", apperrors.ErrInvalidInput, v)
		}
		cfg.Scan.Timeout = d
	}
	if v, ok := lookup("HRMON_SCAN_ADDRESS"); ok {
		cfg.Scan.Address = v
	}
	if v, ok := lookup("HRMON_SCAN_NAME"); ok {
		cfg.Scan.Name = v
	}
	if v, ok := lookup("HRMON_WEB_ADDR"); ok {
		cfg.Web.Addr = v
	}
	if v, ok := lookup("HRMON_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("HRMON_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c Config) Validate() error {
	if c.MaxSamples < 0 {
		return fmt.Errorf("%w: max_samples must be >= 0", apperrors.ErrInvalidInput)
	}
	if c.Scan.Timeout < 0 {
		return fmt.Errorf("%w: scan.timeout must be >= 0", apperrors.ErrInvalidInput)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart size must be positive", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		return fmt.Errorf("%w: web.addr is required", apperrors.ErrInvalidInput)
	}
	if c.Web.Refresh < 0 {
		return fmt.Errorf("%w: web.refresh must be >= 0", apperrors.ErrInvalidInput)
	}
	return nil
}
