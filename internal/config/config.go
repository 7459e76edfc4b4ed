// Package config loads the bobine settings from defaults, an optional
// YAML file and BOBINE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/lucas-science/bobine/pkg/bobine"
	"github.com/lucas-science/bobine/pkg/bobine/parser"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "BOBINE"

// Config represents the complete application configuration
type Config struct {
	Layout  LayoutConfig  `yaml:"layout" envconfig:"LAYOUT"`
	Blocks  BlocksConfig  `yaml:"blocks" envconfig:"BLOCKS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LayoutConfig holds the source directories, relative to the data root
// unless absolute.
type LayoutConfig struct {
	Context   string `yaml:"context" envconfig:"CONTEXT" validate:"required"`
	Pyrolysis string `yaml:"pyrolysis" envconfig:"PYROLYSIS" validate:"required"`
	Online    string `yaml:"online" envconfig:"ONLINE" validate:"required"`
	Offline   string `yaml:"offline" envconfig:"OFFLINE" validate:"required"`
	Permanent string `yaml:"permanent" envconfig:"PERMANENT" validate:"required"`
}

// BlocksConfig holds the block extraction policy.
type BlocksConfig struct {
	MinColumns       int `yaml:"min_columns" envconfig:"MIN_COLUMNS" validate:"min=1"`
	MaxRows          int `yaml:"max_rows" envconfig:"MAX_ROWS" validate:"min=1"`
	PermanentMaxRows int `yaml:"permanent_max_rows" envconfig:"PERMANENT_MAX_ROWS" validate:"min=1"`
	OfflineMaxRows   int `yaml:"offline_max_rows" envconfig:"OFFLINE_MAX_ROWS" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output stderr"`
}

// Default returns default configuration
func Default() *Config {
	layout := parser.DefaultLayout()
	blocks := parser.DefaultBlockParams()
	opts := bobine.DefaultOptions()
	return &Config{
		Layout: LayoutConfig{
			Context:   layout.Context,
			Pyrolysis: layout.Pyrolysis,
			Online:    layout.Online,
			Offline:   layout.Offline,
			Permanent: layout.Permanent,
		},
		Blocks: BlocksConfig{
			MinColumns:       blocks.MinColumns,
			MaxRows:          blocks.MaxRows,
			PermanentMaxRows: parser.PermanentBlockParams().MaxRows,
			OfflineMaxRows:   opts.OfflineMaxRows,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: "bobine.log",
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the struct constraints and reports every failing field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Options converts the configuration into report options.
func (c *Config) Options() bobine.Options {
	opts := bobine.DefaultOptions()
	opts.Layout = parser.Layout{
		Context:   c.Layout.Context,
		Pyrolysis: c.Layout.Pyrolysis,
		Online:    c.Layout.Online,
		Offline:   c.Layout.Offline,
		Permanent: c.Layout.Permanent,
	}
	opts.ComponentBlocks.MinColumns = c.Blocks.MinColumns
	opts.ComponentBlocks.MaxRows = c.Blocks.MaxRows
	opts.PermanentBlocks.MaxRows = c.Blocks.PermanentMaxRows
	opts.OfflineMaxRows = c.Blocks.OfflineMaxRows
	return opts
}
