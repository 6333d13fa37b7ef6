package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// a stale .back3 does not block the save
		logger.Warnw("Failed to delete old config backup",
			logger.FieldConfigPath, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// Persist writes cfg to configPath as TOML, keeping rotating backups of the
// previous file
func Persist(configPath string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return writeConfig(configPath, data)
}

// SetValue sets one key in the TOML file at configPath, creating the file
// when needed. raw is converted to the type of the key's default.
func SetValue(configPath, key, raw string) error {
	if !IsKnownKey(key) {
		return errors.WithHintf(
			errors.Newf("unknown configuration key %q", key),
			"known keys: %s", strings.Join(KnownKeys(), ", "),
		)
	}
	value, err := coerce(key, raw)
	if err != nil {
		return err
	}

	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	table := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := table[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			table[p] = next
		}
		table = next
	}
	table[parts[len(parts)-1]] = value

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := writeConfig(configPath, data); err != nil {
		return err
	}
	logger.Infow("Config value set", logger.FieldKey, key, logger.FieldConfigPath, configPath)
	return nil
}

// readDocument loads the file at configPath as a generic TOML document, or
// an empty one if the file doesn't exist
func readDocument(configPath string) (map[string]interface{}, error) {
	doc := make(map[string]interface{})
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", configPath)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath)
	}
	return doc, nil
}

func writeConfig(configPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	// Mark this as our own write to prevent reload loops
	if w := GetGlobalWatcher(); w != nil {
		w.MarkOwnWrite()
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", configPath)
	}
	logger.Infow("Config written", logger.FieldConfigPath, configPath)
	return nil
}

// coerce converts raw to the type of key's default value
func coerce(key, raw string) (interface{}, error) {
	v := viper.New()
	SetDefaults(v)
	switch v.Get(key).(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Newf("%s expects true or false, got %q", key, raw)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Newf("%s expects an integer, got %q", key, raw)
		}
		return int64(n), nil
	default:
		return raw, nil
	}
}
