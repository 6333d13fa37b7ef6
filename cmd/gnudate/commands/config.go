package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/am/geotime"
	"github.com/teranos/gnudate/errors"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change gnudate configuration",
		Long: `Inspect and change gnudate configuration.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. System config (/etc/gnudate/am.toml)
  3. User config (~/.gnudate/am.toml)
  4. Project config (am.toml, searched for up from the working directory)
  5. Environment variables (GNUDATE_* prefix, plus GNUDATE_TZ and GNUDATE_NOW)
  6. Command line flags

--config replaces the files with a single one.`,
		Example: `  gnudate config show --format json
  gnudate config get reference.timezone
  gnudate config set output.format unix
  gnudate config where`,
	}
	cmd.AddCommand(
		newConfigShowCmd(o),
		newConfigGetCmd(o),
		newConfigSetCmd(),
		newConfigValidateCmd(o),
		newConfigWhereCmd(),
	)
	return cmd
}

func newConfigShowCmd(o *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.loadErr != nil {
				return o.loadErr
			}
			w := cmd.OutOrStdout()
			switch format {
			case am.FormatJSON:
				data, err := json.MarshalIndent(o.cfg, "", "  ")
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to JSON")
				}
				fmt.Fprintln(w, string(data))
			case am.FormatYAML:
				data, err := yaml.Marshal(o.cfg)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to YAML")
				}
				fmt.Fprintf(w, "# gnudate configuration\n%s", data)
			case am.FormatTOML:
				data, err := toml.Marshal(o.cfg)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config to TOML")
				}
				fmt.Fprintf(w, "# gnudate configuration\n%s", data)
			default:
				return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
			}
			return nil
		},
	}
	// shadows the persistent --format, which selects the output of expressions
	cmd.Flags().StringVarP(&format, "format", "f", am.FormatTOML, "Output format: toml, json, yaml")
	return cmd
}

func newConfigGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Long:  "Print one configuration value using dot notation (e.g. reference.timezone, watch.burst)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.loadErr != nil {
				return o.loadErr
			}
			key := strings.ToLower(args[0])
			if !am.IsKnownKey(key) {
				return errors.WithHint(
					errors.Newf("configuration key %q not found", key),
					"known keys: "+strings.Join(am.KnownKeys(), ", "))
			}
			value, err := am.Get(key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write one configuration value to a config file",
		Long: `Write one configuration value to a config file, the user config
(~/.gnudate/am.toml) unless --file is given. The previous version of the
file is kept as a .back1 backup.`,
		Example: `  gnudate config set reference.timezone Europe/Amsterdam
  gnudate config set watch.interval_seconds 5 --file ./am.toml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := file
			if path == "" {
				path = am.UserConfigPath()
			}
			if path == "" {
				return errors.New("no home directory for the user config; pass --file")
			}
			key := strings.ToLower(args[0])
			if err := am.SetValue(path, key, args[1]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", key, args[1], path)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Config file to write (default ~/.gnudate/am.toml)")
	return cmd
}

func newConfigValidateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and its files",
		Long: `Check that every config file parses, warn about keys gnudate does not
know, and validate the effective configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, f := range am.ConfigFiles() {
				if _, err := os.Stat(f.Path); err != nil {
					continue
				}
				unknown, err := am.CheckUnknownKeys(f.Path)
				if err != nil {
					return err
				}
				for _, key := range unknown {
					fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("! %s: unknown key %q", f.Path, key)))
				}
			}
			if o.loadErr != nil {
				return o.loadErr
			}
			if err := o.cfg.Validate(); err != nil {
				return errors.Wrap(err, "configuration validation failed")
			}
			_, err := fmt.Fprintln(w, pterm.Green("✓ Configuration is valid"))
			return err
		},
	}
}

func newConfigWhereCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade: which files were checked, which exist,
and which source set every effective value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			intro, err := am.GetConfigIntrospection()
			if err != nil {
				return errors.Wrap(err, "failed to get config introspection")
			}

			fmt.Fprintln(w, "Configuration files (later overrides earlier):")
			for _, f := range intro.Files {
				state := pterm.Green("found")
				if _, err := os.Stat(f.Path); err != nil {
					state = pterm.Gray("missing")
				}
				fmt.Fprintf(w, "  [%s] %s (%s)\n", strings.ToUpper(string(f.Source)), f.Path, state)
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Active configuration:")
			for _, source := range am.SourceOrder {
				var settings []am.SettingInfo
				for _, s := range intro.Settings {
					if s.Source == source {
						settings = append(settings, s)
					}
				}
				if len(settings) == 0 {
					continue
				}
				fmt.Fprintf(w, "\n%s:\n", source)
				for _, s := range settings {
					value := fmt.Sprintf("%v", s.Value)
					if len(value) > 50 {
						value = value[:47] + "..."
					}
					fmt.Fprintf(w, "  %s = %s", s.Key, value)
					if source != am.SourceDefault {
						fmt.Fprintf(w, "  (%s)", s.SourcePath)
					}
					fmt.Fprintln(w)
				}
			}

			if tz, err := geotime.DetectLocalTimezone(); err == nil {
				fmt.Fprintf(w, "\nSystem timezone: %s\n", tz)
			}
			return nil
		},
	}
}
