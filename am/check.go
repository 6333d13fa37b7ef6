package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/gnudate/errors"
)

// CheckUnknownKeys decodes the file at path strictly and returns the keys
// that don't correspond to any configuration option, sorted.
// Viper silently ignores them, so a misspelled key otherwise has no effect.
func CheckUnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, errors.WithHint(
				errors.Wrapf(err, "%s line %d", path, perr.Position.Line),
				perr.ErrorWithUsage(),
			)
		}
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	return unknown, nil
}
