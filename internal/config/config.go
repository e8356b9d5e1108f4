// Package config loads and validates the declarative search configuration
// (config.yaml + LEADSEARCH_* environment overrides).
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// placeholderProduct is the product name shipped in the example config.
const placeholderProduct = "Your Product"

// Config holds the full application configuration.
type Config struct {
	Product     ProductConfig  `yaml:"product" mapstructure:"product"`
	Country     string         `yaml:"country" mapstructure:"country"`
	Segments    []Segment      `yaml:"segments" mapstructure:"segments"`
	OrgKeywords KeywordLists   `yaml:"org_keywords" mapstructure:"org_keywords"`
	Settings    Settings       `yaml:"settings" mapstructure:"settings"`
	LinkedIn    LinkedInConfig `yaml:"linkedin" mapstructure:"linkedin"`
	Store       StoreConfig    `yaml:"store" mapstructure:"store"`
	Log         LogConfig      `yaml:"log" mapstructure:"log"`
}

// ProductConfig identifies the product leads are gathered for.
type ProductConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// Segment is a configured audience category driving title/keyword searches.
type Segment struct {
	Name          string       `yaml:"name" mapstructure:"name"`
	PersonaTitles KeywordLists `yaml:"persona_titles" mapstructure:"persona_titles"`
	Keywords      []string     `yaml:"keywords" mapstructure:"keywords"`
}

// KeywordLists partitions titles or keywords by language.
type KeywordLists struct {
	Hebrew  []string `yaml:"hebrew" mapstructure:"hebrew"`
	English []string `yaml:"english" mapstructure:"english"`
}

// Settings holds global pacing and volume limits.
type Settings struct {
	OutputDir           string `yaml:"output_dir" mapstructure:"output_dir"`
	MaxResultsPerQuery  int    `yaml:"max_results_per_query" mapstructure:"max_results_per_query"`
	SleepBetweenQueries int    `yaml:"sleep_between_queries" mapstructure:"sleep_between_queries"` // seconds
}

// LinkedInConfig holds limits specific to the LinkedIn engine.
type LinkedInConfig struct {
	MaxPerSession int      `yaml:"max_per_session" mapstructure:"max_per_session"`
	SleepJitter   int      `yaml:"sleep_jitter" mapstructure:"sleep_jitter"` // seconds
	NetworkDepths []string `yaml:"network_depths" mapstructure:"network_depths"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from the given file (or ./config.yaml when path
// is empty) and the environment, applies defaults, and validates.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LEADSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("settings.output_dir", "output")
	v.SetDefault("settings.max_results_per_query", 20)
	v.SetDefault("settings.sleep_between_queries", 2)
	v.SetDefault("linkedin.max_per_session", 50)
	v.SetDefault("linkedin.sleep_jitter", 2)
	v.SetDefault("linkedin.network_depths", []string{"S", "O"})
	v.SetDefault("store.path", "leadsearch.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		return nil, eris.Wrap(err, "config: read file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the required fields the engines depend on.
func (c *Config) Validate() error {
	if c.Product.Name == "" {
		return eris.New("config: product.name is required")
	}
	if c.Product.Name == placeholderProduct {
		return eris.New("config: product.name is still the placeholder, fill in your real product name")
	}
	if len(c.Segments) == 0 {
		return eris.New("config: at least one segment is required")
	}
	for _, s := range c.Segments {
		if s.Name == "" {
			return eris.New("config: every segment needs a name")
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
