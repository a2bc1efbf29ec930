// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/field"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for time-value.
type Configuration struct {
	Defaults Defaults      `yaml:"defaults,omitempty" mapstructure:"defaults"`
	Logging  LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Server   ServerConfig  `yaml:"server,omitempty" mapstructure:"server"`
	Cache    CacheConfig   `yaml:"cache,omitempty" mapstructure:"cache"`
}

// Defaults seeds the fields of a new calculator session. Principal and Years
// are kept as text so they go through the same edit rules as typed input.
type Defaults struct {
	Principal     string  `yaml:"principal,omitempty" mapstructure:"principal"`
	AnnualRate    float64 `yaml:"annualRate" mapstructure:"annualRate"` // percent, e.g. 3.875
	Frequency     string  `yaml:"frequency,omitempty" mapstructure:"frequency"`   // annual, monthly, ...
	CustomPeriods float64 `yaml:"customPeriods,omitempty" mapstructure:"customPeriods"`
	Years         string  `yaml:"years,omitempty" mapstructure:"years"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address     string  `yaml:"address,omitempty" mapstructure:"address"`
	MaxBodySize string  `yaml:"maxBodySize,omitempty" mapstructure:"maxBodySize"`
	RateLimit   float64 `yaml:"rateLimit,omitempty" mapstructure:"rateLimit"` // requests per second per client
	RateBurst   int     `yaml:"rateBurst,omitempty" mapstructure:"rateBurst"`
}

// CacheConfig selects and tunes the calculation result cache.
type CacheConfig struct {
	Backend    string `yaml:"backend,omitempty" mapstructure:"backend"` // memory, redis, none
	RedisAddr  string `yaml:"redisAddr,omitempty" mapstructure:"redisAddr"`
	RedisDB    int    `yaml:"redisDB,omitempty" mapstructure:"redisDB"`
	TTLSeconds int    `yaml:"ttlSeconds,omitempty" mapstructure:"ttlSeconds"`
	MaxEntries int    `yaml:"maxEntries,omitempty" mapstructure:"maxEntries"`
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	conf := &Configuration{
		Defaults: Defaults{AnnualRate: constants.DefaultAnnualRate * constants.PercentageMultiplier},
	}
	conf.applyDefaults()
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered for AutomaticEnv to see nested keys.
	def := Default()
	v.SetDefault("defaults.principal", def.Defaults.Principal)
	v.SetDefault("defaults.annualRate", def.Defaults.AnnualRate)
	v.SetDefault("defaults.frequency", def.Defaults.Frequency)
	v.SetDefault("defaults.customPeriods", def.Defaults.CustomPeriods)
	v.SetDefault("defaults.years", def.Defaults.Years)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("server.maxBodySize", def.Server.MaxBodySize)
	v.SetDefault("server.rateLimit", def.Server.RateLimit)
	v.SetDefault("server.rateBurst", def.Server.RateBurst)
	v.SetDefault("cache.backend", def.Cache.Backend)
	v.SetDefault("cache.redisAddr", def.Cache.RedisAddr)
	v.SetDefault("cache.redisDB", def.Cache.RedisDB)
	v.SetDefault("cache.ttlSeconds", def.Cache.TTLSeconds)
	v.SetDefault("cache.maxEntries", def.Cache.MaxEntries)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults, still subject to
// TVM_* environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	if err := configuration.Server.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if strings.TrimSpace(conf.Defaults.Principal) == "" {
		conf.Defaults.Principal = constants.DefaultPrincipalText
	}
	if conf.Defaults.Frequency == "" {
		conf.Defaults.Frequency = constants.DefaultFrequency
	}
	if strings.TrimSpace(conf.Defaults.Years) == "" {
		conf.Defaults.Years = constants.DefaultYearsText
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if strings.TrimSpace(conf.Server.MaxBodySize) == "" {
		conf.Server.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
	}
	if conf.Server.RateLimit <= 0 {
		conf.Server.RateLimit = constants.DefaultRateLimit
	}
	if conf.Server.RateBurst <= 0 {
		conf.Server.RateBurst = constants.DefaultRateBurst
	}
	if conf.Cache.Backend == "" {
		conf.Cache.Backend = constants.CacheBackendMemory
	}
	if conf.Cache.TTLSeconds <= 0 {
		conf.Cache.TTLSeconds = constants.DefaultCacheTTLSeconds
	}
	if conf.Cache.MaxEntries <= 0 {
		conf.Cache.MaxEntries = constants.DefaultCacheMaxEntries
	}
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// MaxBodySizeBytes returns the configured request body limit in bytes.
func (s ServerConfig) MaxBodySizeBytes() int64 {
	n, err := ParseSize(s.MaxBodySize)
	if err != nil || n <= 0 {
		return constants.DefaultMaxBodySizeBytes
	}
	return n
}

func (s ServerConfig) validate() error {
	if _, err := ParseSize(s.MaxBodySize); err != nil {
		return fmt.Errorf("server.maxBodySize: %w", err)
	}
	return nil
}

// ResolveFrequency resolves the configured default frequency. A positive
// CustomPeriods takes precedence over the token.
func (d Defaults) ResolveFrequency() (compounding.Frequency, error) {
	if d.CustomPeriods != 0 {
		f := compounding.NewCustom(d.CustomPeriods)
		if err := f.Validate(); err != nil {
			return compounding.Frequency{}, fmt.Errorf("defaults.customPeriods: %w", err)
		}
		return f, nil
	}
	f, ok := compounding.Parse(d.Frequency)
	if !ok {
		return compounding.Frequency{}, fmt.Errorf("defaults.frequency: unknown token %q", d.Frequency)
	}
	return f, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if _, err := conf.Defaults.ResolveFrequency(); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v, falling back to %s", err, constants.DefaultFrequency))
	}

	for name, raw := range map[string]string{
		"defaults.principal": conf.Defaults.Principal,
		"defaults.years":     conf.Defaults.Years,
	} {
		if msg := field.ErrorMessage(raw, "value"); msg != "" {
			warnings = append(warnings, fmt.Sprintf("%s %q: %s", name, raw, msg))
		}
	}

	if conf.Defaults.AnnualRate < constants.RateSliderMin || conf.Defaults.AnnualRate > constants.RateSliderMax {
		warnings = append(warnings, fmt.Sprintf("defaults.annualRate %.3f%% is outside the slider range %.0f-%.0f%%",
			conf.Defaults.AnnualRate, constants.RateSliderMin, constants.RateSliderMax))
	}

	switch conf.Cache.Backend {
	case constants.CacheBackendMemory, constants.CacheBackendNone:
	case constants.CacheBackendRedis:
		if conf.Cache.RedisAddr == "" {
			warnings = append(warnings, "cache.backend is redis but cache.redisAddr is empty")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown cache.backend %q, using %s", conf.Cache.Backend, constants.CacheBackendMemory))
	}

	// Map iteration order is random; keep warnings stable.
	sort.Strings(warnings)
	return warnings
}
