// Package config loads the quotation editor settings from defaults, an
// optional quotation.yaml and QUOTE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"quotationeditor/grid"
	"quotationeditor/logging"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir string         `mapstructure:"data_dir"`
	Log     logging.Config `mapstructure:"log"`
	Catalog CatalogConfig  `mapstructure:"catalog"`
	Quote   QuoteConfig    `mapstructure:"quote"`
}

// CatalogConfig tunes price catalog lookups.
type CatalogConfig struct {
	SearchLimit int `mapstructure:"search_limit"`
}

// QuoteConfig seeds new quotation documents.
type QuoteConfig struct {
	Currency        string   `mapstructure:"currency"`
	Validity        string   `mapstructure:"validity"`
	Exclusions      []string `mapstructure:"exclusions"`
	AdjustmentPanel bool     `mapstructure:"adjustment_panel"`
	NumberPrefix    string   `mapstructure:"number_prefix"`
}

// Load reads configuration. dir, when set, is searched for quotation.yaml
// before the working directory. A missing file is not an error.
func Load(dir string) (Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", "pb_data")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.development", false)
	v.SetDefault("catalog.search_limit", 20)
	v.SetDefault("quote.currency", "SAR")
	v.SetDefault("quote.validity", "30 days")
	v.SetDefault("quote.exclusions", []string{})
	v.SetDefault("quote.adjustment_panel", true)
	v.SetDefault("quote.number_prefix", "QT")

	v.SetConfigName("quotation") // .yaml is implicit
	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read quotation.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Catalog.SearchLimit <= 0 {
		cfg.Catalog.SearchLimit = 20
	}
	return cfg, nil
}

// Defaults returns the seed values for a new document.
func (c Config) Defaults() grid.Defaults {
	return grid.Defaults{
		Currency:   c.Quote.Currency,
		Validity:   c.Quote.Validity,
		Exclusions: append([]string(nil), c.Quote.Exclusions...),
	}
}

// Layout returns which optional form panels are shown.
func (c Config) Layout() grid.Layout {
	return grid.Layout{AdjustmentPanel: c.Quote.AdjustmentPanel}
}
