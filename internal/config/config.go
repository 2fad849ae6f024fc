package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "CATALOGDASH_"

type Root struct {
	Env   string `yaml:"env"`
	Local Config `yaml:"local"`
	Dev   Config `yaml:"dev"`
	Prod  Config `yaml:"prod"`
}

type Config struct {
	Env string `yaml:"-" env:"ENV"`

	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Catalog   CatalogConfig   `yaml:"catalog" envPrefix:"CATALOG_"`
	Gallery   GalleryConfig   `yaml:"gallery" envPrefix:"GALLERY_"`
	Dashboard DashboardConfig `yaml:"dashboard" envPrefix:"DASHBOARD_"`
	HTTP      HTTPConfig      `yaml:"http" envPrefix:"HTTP_"`
	CLI       CLIConfig       `yaml:"cli" envPrefix:"CLI_"`
}

type LogConfig struct {
	Level     string `yaml:"level" env:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format    string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
	AddSource bool   `yaml:"add_source" env:"ADD_SOURCE"`
	File      string `yaml:"file" env:"FILE"` // tui only
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
}

type CatalogConfig struct {
	BaseURL            string `yaml:"base_url" env:"BASE_URL" validate:"required,url"`
	ProductsPath       string `yaml:"products_path" env:"PRODUCTS_PATH" validate:"required,startswith=/"`
	AllPath            string `yaml:"all_path" env:"ALL_PATH" validate:"required,startswith=/"`
	TagsPath           string `yaml:"tags_path" env:"TAGS_PATH" validate:"required,startswith=/"`
	LabelsPath         string `yaml:"labels_path" env:"LABELS_PATH" validate:"required,startswith=/"`
	PromotionsPath     string `yaml:"promotions_path" env:"PROMOTIONS_PATH" validate:"required,startswith=/"`
	VocabularyPageSize int    `yaml:"vocabulary_page_size" env:"VOCABULARY_PAGE_SIZE" validate:"min=1"`
}

type GalleryConfig struct {
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" validate:"oneof=6 12 24"`
}

type DashboardConfig struct {
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds" env:"CACHE_TTL_SECONDS" validate:"min=0"`
	TopWords        int    `yaml:"top_words" env:"TOP_WORDS" validate:"min=1"`
	NoneLabel       string `yaml:"none_label" env:"NONE_LABEL" validate:"required"`
}

type HTTPConfig struct {
	TimeoutSeconds    int `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS" validate:"min=1"`
	AllTimeoutSeconds int `yaml:"all_timeout_seconds" env:"ALL_TIMEOUT_SECONDS" validate:"min=1"`
	Retries           int `yaml:"retries" env:"RETRIES" validate:"min=0"`
	Concurrency       int `yaml:"concurrency" env:"CONCURRENCY" validate:"min=0"`
}

type CLIConfig struct {
	OutputFile string `yaml:"output_file" env:"OUTPUT_FILE"`
}

func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c HTTPConfig) AllTimeout() time.Duration {
	return time.Duration(c.AllTimeoutSeconds) * time.Second
}

func (c DashboardConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load reads the profile selected by the file's env key, fills defaults,
// applies CATALOGDASH_* overrides and validates the result. An empty path
// yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	var root Root
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &root); err != nil {
			return nil, err
		}
	}

	envName := strings.TrimSpace(strings.ToLower(root.Env))
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "ENV")); v != "" {
		envName = strings.ToLower(v)
	}
	if envName == "" {
		envName = "local"
	}

	var p Config
	switch envName {
	case "local":
		p = root.Local
	case "dev":
		p = root.Dev
	case "prod":
		p = root.Prod
	default:
		return nil, fmt.Errorf("unknown env=%q (expected local|dev|prod)", envName)
	}

	if err := env.ParseWithOptions(&p, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	p.Env = envName

	applyDefaults(&p)

	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func Validate(p *Config) error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func Default() *Config {
	p := Config{Env: "local"}
	applyDefaults(&p)
	return &p
}

func applyDefaults(p *Config) {
	if p.Server.Host == "" {
		p.Server.Host = "0.0.0.0"
	}
	if p.Server.Port == 0 {
		p.Server.Port = 7891
	}

	p.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(p.Catalog.BaseURL), "/")
	if p.Catalog.BaseURL == "" {
		p.Catalog.BaseURL = "http://localhost:8000/api"
	}
	if p.Catalog.ProductsPath == "" {
		p.Catalog.ProductsPath = "/products/"
	}
	if p.Catalog.AllPath == "" {
		p.Catalog.AllPath = "/products/all/"
	}
	if p.Catalog.TagsPath == "" {
		p.Catalog.TagsPath = "/tags/"
	}
	if p.Catalog.LabelsPath == "" {
		p.Catalog.LabelsPath = "/labels/"
	}
	if p.Catalog.PromotionsPath == "" {
		p.Catalog.PromotionsPath = "/promotion-tags/"
	}
	if p.Catalog.VocabularyPageSize <= 0 {
		p.Catalog.VocabularyPageSize = 1000
	}

	if p.Gallery.DefaultPageSize == 0 {
		p.Gallery.DefaultPageSize = 12
	}

	if p.Dashboard.CacheTTLSeconds == 0 {
		p.Dashboard.CacheTTLSeconds = 300
	}
	if p.Dashboard.TopWords <= 0 {
		p.Dashboard.TopWords = 100
	}
	p.Dashboard.NoneLabel = strings.TrimSpace(p.Dashboard.NoneLabel)
	if p.Dashboard.NoneLabel == "" {
		p.Dashboard.NoneLabel = "none"
	}

	if p.HTTP.TimeoutSeconds <= 0 {
		p.HTTP.TimeoutSeconds = 10
	}
	if p.HTTP.AllTimeoutSeconds <= 0 {
		p.HTTP.AllTimeoutSeconds = 40
	}
	if p.HTTP.Retries < 0 {
		p.HTTP.Retries = 0
	}
	if p.HTTP.Concurrency <= 0 {
		p.HTTP.Concurrency = 4
	}

	if p.Log.Level == "" {
		if p.Env == "prod" {
			p.Log.Level = "info"
		} else {
			p.Log.Level = "debug"
		}
	}
	p.Log.Level = strings.ToLower(strings.TrimSpace(p.Log.Level))
	if p.Log.Format == "" {
		if p.Env == "prod" {
			p.Log.Format = "json"
		} else {
			p.Log.Format = "text"
		}
	}
	p.Log.Format = strings.ToLower(strings.TrimSpace(p.Log.Format))
}
