package am

import (
	"strings"
	"time"

	"github.com/teranos/gnudate/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.ReferenceLocation(); err != nil {
		return err
	}
	if c.Reference.Fixed != "" {
		if _, err := time.Parse(time.RFC3339Nano, c.Reference.Fixed); err != nil {
			return errors.WithHint(
				errors.Newf("reference.fixed %q is not an RFC 3339 instant", c.Reference.Fixed),
				"e.g. 2021-02-14T15:04:05Z or 2021-02-14T15:04:05+01:00",
			)
		}
	}

	if !isFormat(c.Output.Format) {
		return errors.Newf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	if c.Output.Format == FormatLayout && strings.TrimSpace(c.Output.Layout) == "" {
		return errors.New("output.layout cannot be empty when output.format is layout")
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.Watch.IntervalSeconds <= 0 {
		return errors.Newf("watch.interval_seconds must be > 0, got %d", c.Watch.IntervalSeconds)
	}
	if c.Watch.Burst < 1 {
		return errors.Newf("watch.burst must be >= 1, got %d", c.Watch.Burst)
	}

	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
