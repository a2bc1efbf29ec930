// Package constants provides shared constants for the time-value application.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Calculator defaults, matching the values a fresh session starts with.
const (
	// DefaultPrincipal is the principal shown when a session is created
	DefaultPrincipal = 1000.00

	// DefaultPrincipalText is the raw text paired with DefaultPrincipal
	DefaultPrincipalText = "1000.00"

	// DefaultAnnualRate is the default annual rate as a decimal fraction (3.875%)
	DefaultAnnualRate = 0.03875

	// DefaultYears is the default duration in years
	DefaultYears = 7.0

	// DefaultYearsText is the raw text paired with DefaultYears
	DefaultYearsText = "7.0"

	// DefaultFrequency is the token of the default compounding frequency
	DefaultFrequency = "annual"
)

// Interest rate slider bounds, expressed in percent.
const (
	RateSliderMin  = 0.0
	RateSliderMax  = 50.0
	RateSliderStep = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix viper uses when reading environment overrides
	EnvPrefix = "TVM"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimit is the default number of API requests per second per client
	DefaultRateLimit = 20.0

	// DefaultRateBurst is the default burst size for the API rate limiter
	DefaultRateBurst = 40
)

// Cache configuration defaults
const (
	// CacheBackendMemory keeps results in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps results in a redis server
	CacheBackendRedis = "redis"

	// CacheBackendNone disables result caching
	CacheBackendNone = "none"

	// DefaultCacheMaxEntries bounds the in-memory cache
	DefaultCacheMaxEntries = 1024

	// DefaultCacheTTLSeconds is the default lifetime of a cached result
	DefaultCacheTTLSeconds = 3600
)
