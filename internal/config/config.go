// Package config loads process configuration from defaults, an optional
// YAML file and BACHLOG_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores (catalog.base_url -> BACHLOG_CATALOG_BASE_URL).
const EnvPrefix = "BACHLOG"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	DBPath              string               `mapstructure:"db" validate:"required"`
	Catalog             CatalogConfig        `mapstructure:"catalog"`
	ElectiveLabel       string               `mapstructure:"elective_label"`
	ThesisLabel         string               `mapstructure:"thesis_label"`
	PreferredCurriculum string               `mapstructure:"preferred_curriculum"`
	LogUseCases         bool                 `mapstructure:"log_use_cases"`
	Modules             domain.ModuleOptions `mapstructure:"modules" validate:"dive"`
}

type CatalogConfig struct {
	BaseURL     string `mapstructure:"base_url" validate:"required,url"`
	// TimeoutMs bounds each catalog call. Zero disables the timeout.
	TimeoutMs   int    `mapstructure:"timeout_ms" validate:"gte=0"`
	SearchLimit int    `mapstructure:"search_limit" validate:"gt=0,lte=200"`
	LogCalls    bool   `mapstructure:"log_calls"`
}

// ClientConfig converts the catalog section to the client's own config.
func (c CatalogConfig) ClientConfig() catalog.Config {
	return catalog.Config{
		BaseURL:     c.BaseURL,
		TimeoutMs:   c.TimeoutMs,
		SearchLimit: c.SearchLimit,
		LogCalls:    c.LogCalls,
	}
}

func setDefaults(v *viper.Viper) {
	cat := catalog.DefaultConfig()
	v.SetDefault("db", defaultDBPath())
	v.SetDefault("catalog.base_url", cat.BaseURL)
	v.SetDefault("catalog.timeout_ms", cat.TimeoutMs)
	v.SetDefault("catalog.search_limit", cat.SearchLimit)
	v.SetDefault("catalog.log_calls", false)
	v.SetDefault("elective_label", "Valikained")
	v.SetDefault("thesis_label", "Lõputöö")
	v.SetDefault("preferred_curriculum", "Informaatika")
	v.SetDefault("log_use_cases", false)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bachlog.db"
	}
	return filepath.Join(home, ".bachlog", "bachlog.db")
}

// Load reads the configuration. An explicit path must exist; without one,
// config.yaml is looked up in ~/.bachlog and the working directory and may
// be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bachlog"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = domain.DefaultModuleOptions()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field rules and that module codes are unique.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool)
	for _, opt := range c.Modules {
		if opt.Code == nil {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(*opt.Code))
		if code == "" {
			return fmt.Errorf("%w: module %q has an empty code", ErrInvalidConfig, opt.Title)
		}
		if seen[code] {
			return fmt.Errorf("%w: module code %s is listed twice", ErrInvalidConfig, code)
		}
		seen[code] = true
	}
	if len(seen) == 0 {
		return fmt.Errorf("%w: no module codes configured", ErrInvalidConfig)
	}
	return nil
}
