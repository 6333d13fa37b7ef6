package am

// Config represents the gnudate configuration
type Config struct {
	Reference ReferenceConfig `mapstructure:"reference" toml:"reference" yaml:"reference" json:"reference"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// ReferenceConfig configures the instant relative expressions resolve against
type ReferenceConfig struct {
	Timezone string `mapstructure:"timezone" toml:"timezone" yaml:"timezone" json:"timezone"` // IANA name, abbreviation or city (default: Local)
	Fixed    string `mapstructure:"fixed" toml:"fixed" yaml:"fixed" json:"fixed"`             // RFC 3339 instant used instead of the clock (empty = now)
}

// OutputConfig configures how resolved instants are printed
type OutputConfig struct {
	Format string `mapstructure:"format" toml:"format" yaml:"format" json:"format"` // rfc3339, unix, layout, json, yaml, toml
	Layout string `mapstructure:"layout" toml:"layout" yaml:"layout" json:"layout"` // Go reference layout, used when format = layout
}

// LogConfig configures diagnostic logging on stderr
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" yaml:"verbosity" json:"verbosity"` // same scale as -v flags
}

// WatchConfig configures `gnudate watch`
type WatchConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds" toml:"interval_seconds" yaml:"interval_seconds" json:"interval_seconds"`
	Burst           int `mapstructure:"burst" toml:"burst" yaml:"burst" json:"burst"` // re-evaluations allowed back to back after a reload
}

// Output formats
const (
	FormatRFC3339 = "rfc3339"
	FormatUnix    = "unix"
	FormatLayout  = "layout"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatTOML    = "toml"
)

// Formats lists every supported output format
var Formats = []string{FormatRFC3339, FormatUnix, FormatLayout, FormatJSON, FormatYAML, FormatTOML}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// EnvPrefix is the prefix of environment variable overrides (GNUDATE_OUTPUT_FORMAT)
const EnvPrefix = "GNUDATE"
