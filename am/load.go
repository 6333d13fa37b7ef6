package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/gnudate/errors"
)

var (
	mu             sync.Mutex
	globalConfig   *Config
	viperInstance  *viper.Viper
	explicitConfig string

	// ConfigSources records which source set each key during the last load
	ConfigSources = map[string]SourceInfo{}
)

// SystemConfigPath is the lowest-precedence config file
const SystemConfigPath = "/etc/gnudate/am.toml"

// Load reads the gnudate configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a single file over the defaults,
// ignoring the cascade and the environment
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// SetConfigFile replaces the file cascade with a single file (the --config
// flag). An empty path restores the cascade.
func SetConfigFile(path string) {
	Reset()
	mu.Lock()
	defer mu.Unlock()
	explicitConfig = path
}

// Reset clears the cached configuration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)
	SetDefaults(v)

	sources := map[string]SourceInfo{}
	if err := mergeConfigFiles(v, sources); err != nil {
		return nil, err
	}
	ConfigSources = sources
	viperInstance = v
	return v, nil
}

// ConfigFile is one candidate file of the cascade
type ConfigFile struct {
	Source ConfigSource
	Path   string
}

// ConfigFiles lists the candidate files in precedence order (lowest first),
// whether or not they exist
func ConfigFiles() []ConfigFile {
	mu.Lock()
	defer mu.Unlock()
	return configFiles(explicitConfig)
}

func configFiles(explicit string) []ConfigFile {
	if explicit != "" {
		return []ConfigFile{{Source: SourceFlag, Path: explicit}}
	}

	files := []ConfigFile{{Source: SourceSystem, Path: SystemConfigPath}}
	if p := UserConfigPath(); p != "" {
		files = append(files, ConfigFile{Source: SourceUser, Path: p})
	}
	if p := findProjectConfig(); p != "" {
		files = append(files, ConfigFile{Source: SourceProject, Path: p})
	}
	return files
}

// UserConfigPath returns ~/.gnudate/am.toml
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gnudate", "am.toml")
}

// findProjectConfig searches for am.toml by walking up the directory tree.
// The user config is never reported as a project config.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	user := UserConfigPath()

	for {
		p := filepath.Join(dir, "am.toml")
		if _, err := os.Stat(p); err == nil && p != user {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges configuration files in precedence order:
// system < user < project. Merged values sit below environment variables.
// Callers hold mu.
func mergeConfigFiles(v *viper.Viper, sources map[string]SourceInfo) error {
	for _, f := range configFiles(explicitConfig) {
		if _, err := os.Stat(f.Path); err != nil {
			if f.Source == SourceFlag {
				return errors.Wrapf(err, "config file %s", f.Path)
			}
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(f.Path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", f.Path),
				"run `gnudate config validate` to see every problem in the file",
			)
		}

		settings := fileViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", f.Path)
		}
		markSettingsFromSource(settings, "", f.Source, f.Path, sources)
	}
	return nil
}

// markSettingsFromSource records source for every leaf key of settings
func markSettingsFromSource(settings map[string]interface{}, prefix string, source ConfigSource, path string, sourceMap map[string]SourceInfo) {
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			markSettingsFromSource(nested, fullKey, source, path, sourceMap)
			continue
		}
		sourceMap[fullKey] = SourceInfo{Source: source, Path: path}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, error) {
	v, err := GetViper()
	if err != nil {
		return nil, err
	}
	return v.Get(key), nil
}
