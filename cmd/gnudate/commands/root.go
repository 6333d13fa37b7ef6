package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/logger"
)

// rootOptions carries the persistent flags and the configuration they
// override
type rootOptions struct {
	verbosity  int
	configPath string
	tz         string
	ref        string
	format     string
	layout     string
	logJSON    bool

	cfg     *am.Config
	loadErr error // set when the configuration failed to load for a config command
	now     func() time.Time
}

// NewRootCmd builds the gnudate command tree
func NewRootCmd() *cobra.Command {
	o := &rootOptions{now: time.Now}
	return newRootCmd(o)
}

func newRootCmd(o *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "gnudate",
		Short: "Parse GNU date expressions",
		Long: `gnudate - Parse GNU date expressions

Resolves free-form date expressions the way GNU date -d does:
absolute dates and times, zones, weekdays, relative offsets and
@epoch timestamps, in any order.

Examples:
  gnudate parse "next friday 10:30 pm est"
  gnudate parse 3 days ago --format unix
  gnudate duration 1 hour 30 minutes
  gnudate add --to 2021-01-31 1 month
  gnudate explain "feb 14 at noon, utc"
  echo "tomorrow" | gnudate batch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.CountVarP(&o.verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
	pf.StringVar(&o.configPath, "config", "", "Read configuration from this file only")
	pf.StringVar(&o.tz, "tz", "", "Reference timezone (overrides reference.timezone)")
	pf.StringVar(&o.ref, "ref", "", "Fixed RFC 3339 reference instant (overrides reference.fixed)")
	pf.StringVarP(&o.format, "format", "f", "", "Output format: rfc3339, unix, layout, json, yaml, toml")
	pf.StringVar(&o.layout, "layout", "", "Go time layout used with --format layout")
	pf.BoolVar(&o.logJSON, "log-json", false, "Write logs as JSON")

	root.AddCommand(
		newParseCmd(o),
		newDurationCmd(o),
		newAddCmd(o),
		newEpochCmd(o),
		newWeekdayCmd(o),
		newExplainCmd(o),
		newBatchCmd(o),
		newWatchCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and starts logging
func (o *rootOptions) setup(cmd *cobra.Command) error {
	am.SetConfigFile(o.configPath)
	loaded, err := am.Load()
	if err != nil {
		// config commands must work on a broken configuration
		if !isConfigCommand(cmd) {
			return errors.Wrap(err, "failed to load config")
		}
		o.loadErr = err
		loaded = am.Defaults()
	}
	cfg := *loaded
	o.applyFlags(cmd, &cfg)

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	o.cfg = &cfg

	if isConfigCommand(cmd) {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"run `gnudate config where` to see which file sets it")
	}

	if logger.ShouldOutput(cfg.Log.Verbosity, logger.OutputConfig) {
		logger.ComponentLogger("commands").Infow("configuration loaded",
			logger.FieldTimezone, cfg.Reference.Timezone,
			logger.FieldFormat, cfg.Output.Format,
			logger.FieldReference, cfg.Reference.Fixed)
	}
	return nil
}

// applyFlags lays the changed persistent flags over cfg
func (o *rootOptions) applyFlags(cmd *cobra.Command, cfg *am.Config) {
	// the root's own flag set, so a subcommand flag of the same name never counts
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("tz") {
		cfg.Reference.Timezone = o.tz
	}
	if flags.Changed("ref") {
		cfg.Reference.Fixed = o.ref
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("layout") {
		cfg.Output.Layout = o.layout
		if !flags.Changed("format") {
			cfg.Output.Format = am.FormatLayout
		}
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = o.logJSON
	}
	if o.verbosity > cfg.Log.Verbosity {
		cfg.Log.Verbosity = o.verbosity
	}
}

// reference returns the instant expressions resolve against
func (o *rootOptions) reference() (time.Time, error) {
	return o.cfg.ReferenceInstant(o.now())
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}
