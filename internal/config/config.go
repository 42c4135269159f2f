package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It is populated once at startup and handed to the components that need it.
type Config struct {
	// Environment is "production" or anything else; non-production adds a console log sink
	Environment string `env:"NODE_ENV" env-default:"development" yaml:"environment"`

	// HTTP contains the public listener configuration
	HTTP struct {
		// Port is the TCP port the public server binds to
		Port int `env:"API_PORT" env-default:"8001" yaml:"port"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes caps request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"102400" yaml:"maxBodyBytes"`
		// TrustProxy makes the client address come from X-Forwarded-For / X-Real-IP
		TrustProxy bool `env:"HTTP_TRUST_PROXY" env-default:"false" yaml:"trustProxy"`
	} `yaml:"http"`

	// Ops contains the metrics and profiling listener configuration
	Ops struct {
		// Addr is the listen address; empty disables the ops server
		Addr string `env:"OPS_ADDR" env-default:":9090" yaml:"addr"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"OPS_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"ops"`

	// ReceitaWS contains the upstream registry configuration
	ReceitaWS struct {
		// APIKey is forwarded as a bearer token
		APIKey string `env:"RECEITAWS_API_KEY" yaml:"apiKey"`
		// BaseURL is the scheme and host of the registry API
		BaseURL string `env:"RECEITAWS_BASE_URL" env-default:"https://www.receitaws.com.br" yaml:"baseURL"`
		// Timeout bounds a single upstream call
		Timeout time.Duration `env:"RECEITAWS_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"receitaws"`

	// RateLimit contains the per-client quota
	RateLimit struct {
		// Window is the length of a counting window
		Window time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"15m" yaml:"window"`
		// Max is the number of requests allowed per window
		Max int `env:"RATE_LIMIT_MAX" env-default:"100" yaml:"max"`
	} `yaml:"rateLimit"`

	// Log contains the log sink configuration
	Log struct {
		// Level is the minimum level of the combined and console sinks
		Level string `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
		// ErrorFile receives error entries only
		ErrorFile string `env:"LOG_ERROR_FILE" env-default:"error.log" yaml:"errorFile"`
		// CombinedFile receives every entry
		CombinedFile string `env:"LOG_COMBINED_FILE" env-default:"combined.log" yaml:"combinedFile"`
	} `yaml:"log"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Addr returns the public listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}

// Validate reports configuration values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("API_PORT %d is out of range", c.HTTP.Port))
	}
	if c.RateLimit.Max <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimit.Max))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window))
	}
	if u, err := url.Parse(c.ReceitaWS.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("RECEITAWS_BASE_URL %q is not an absolute URL", c.ReceitaWS.BaseURL))
	}

	return errors.Join(errs...)
}

// Load fills a Config from the environment. When configPath names an existing
// .env or yaml file, it is read first and the environment overrides it.
func Load(configPath string) (*Config, error) {
	var cfg Config

	var err error
	if configPath != "" && fileExists(configPath) {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
