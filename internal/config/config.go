// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "LANDED_COST_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Engine contains computation settings
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Data contains reference data location
	Data DataConfig `json:"data" yaml:"data"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// EngineConfig contains landed cost engine settings
type EngineConfig struct {
	// Currency labels every figure; no conversion is performed
	Currency types.Currency `json:"currency" yaml:"currency"`

	// ReferenceBatchSize is the unit count a fixed shipment fee is spread over
	ReferenceBatchSize int64 `json:"reference_batch_size" yaml:"reference_batch_size"`

	// CustomsBase selects the subtotal the final-assembly tariff applies to
	CustomsBase string `json:"customs_base" yaml:"customs_base"`

	// DefaultDestination is used for products without a target market
	DefaultDestination types.Country `json:"default_destination" yaml:"default_destination"`

	// UseTemplateDefaults enables the template default rate tier
	UseTemplateDefaults bool `json:"use_template_defaults" yaml:"use_template_defaults"`
}

// DataConfig locates the reference data
type DataConfig struct {
	// Dir is the dataset directory (csv) or file (json)
	Dir string `json:"dir" yaml:"dir"`

	// Format is csv or json
	Format string `json:"format" yaml:"format"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// ShowFlows prints per-flow cost shares
	ShowFlows bool `json:"show_flows" yaml:"show_flows"`

	// ShowTariffs prints every tariff resolution
	ShowTariffs bool `json:"show_tariffs" yaml:"show_tariffs"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Engine: EngineConfig{
			Currency:            types.CurrencyUSD,
			ReferenceBatchSize:  10000,
			CustomsBase:         "full",
			DefaultDestination:  "United States",
			UseTemplateDefaults: false,
		},
		Data: DataConfig{
			Dir:    "data",
			Format: "csv",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowFlows:     false,
			ShowTariffs:   true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("read config", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("decode "+path, err)
	}

	return config, config.Validate()
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadDotEnv reads a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Config("load "+path, err)
	}
	return nil
}

// ApplyEnv overrides file values with LANDED_COST_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	if v, ok := lookup("CURRENCY"); ok {
		c.Engine.Currency = types.Currency(v)
	}
	if v, ok := lookup("DATA_DIR"); ok {
		c.Data.Dir = v
	}
	if v, ok := lookup("DATA_FORMAT"); ok {
		c.Data.Format = v
	}
	if v, ok := lookup("CUSTOMS_BASE"); ok {
		c.Engine.CustomsBase = v
	}
	if v, ok := lookup("BATCH_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Config(EnvPrefix+"BATCH_SIZE", err)
		}
		c.Engine.ReferenceBatchSize = n
	}
	return c.Validate()
}

// Validate checks settings the engine cannot run without
func (c *Config) Validate() error {
	if c.Engine.ReferenceBatchSize <= 0 {
		return errors.Config("reference_batch_size must be positive", nil)
	}
	switch c.Engine.CustomsBase {
	case "full", "inbound", "material_conversion":
	default:
		return errors.Config("unknown customs_base "+strconv.Quote(c.Engine.CustomsBase), nil)
	}
	switch c.Data.Format {
	case "csv", "json":
	default:
		return errors.Config("unknown data format "+strconv.Quote(c.Data.Format), nil)
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
