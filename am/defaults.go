package am

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/gnudate/am/geotime"
	"github.com/teranos/gnudate/errors"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("reference.timezone", "Local")
	v.SetDefault("reference.fixed", "")

	v.SetDefault("output.format", FormatRFC3339)
	v.SetDefault("output.layout", time.RFC1123Z)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.interval_seconds", 1)
	v.SetDefault("watch.burst", 1)
}

// Defaults returns the built-in configuration, ignoring files and environment
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// the defaults always decode
		panic(err)
	}
	return cfg
}

// BindEnvVars binds the short environment names people already export.
// Every other key is reachable as GNUDATE_<SECTION>_<KEY>.
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("reference.timezone", "GNUDATE_REFERENCE_TIMEZONE", "GNUDATE_TZ")
	v.BindEnv("reference.fixed", "GNUDATE_REFERENCE_FIXED", "GNUDATE_NOW")
}

// KnownKeys returns every configuration key in dot notation
func KnownKeys() []string {
	v := viper.New()
	SetDefaults(v)
	return v.AllKeys()
}

// IsKnownKey reports whether key names a configuration option
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// ReferenceLocation returns the location reference instants are expressed in
func (c *Config) ReferenceLocation() (*time.Location, error) {
	loc, err := geotime.LoadLocation(c.Reference.Timezone)
	if err != nil {
		return nil, errors.Wrap(err, "reference.timezone")
	}
	return loc, nil
}

// ReferenceInstant returns the instant expressions resolve against: the
// fixed reference when one is configured, now otherwise, in the reference
// location
func (c *Config) ReferenceInstant(now time.Time) (time.Time, error) {
	loc, err := c.ReferenceLocation()
	if err != nil {
		return time.Time{}, err
	}
	if c.Reference.Fixed == "" {
		return now.In(loc), nil
	}
	t, err := time.Parse(time.RFC3339Nano, c.Reference.Fixed)
	if err != nil {
		return time.Time{}, errors.WithHint(
			errors.Wrapf(err, "reference.fixed %q", c.Reference.Fixed),
			"use RFC 3339, e.g. 2021-02-14T15:04:05Z",
		)
	}
	return t.In(loc), nil
}

// WatchInterval returns the re-evaluation interval of `gnudate watch`
func (c *Config) WatchInterval() time.Duration {
	if c.Watch.IntervalSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.Watch.IntervalSeconds) * time.Second
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Reference: {Timezone: %s, Fixed: %q}, Output: {Format: %s}, Log: {Verbosity: %d}}",
		c.Reference.Timezone, c.Reference.Fixed, c.Output.Format, c.Log.Verbosity)
}
