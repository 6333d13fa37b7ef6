package commands

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/datetime"
	"github.com/teranos/gnudate/logger"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	var (
		count       int
		changesOnly bool
	)
	cmd := &cobra.Command{
		Use:   "watch [expression...]",
		Short: "Re-resolve an expression on every tick",
		Long: `Re-resolve an expression against the clock every watch.interval_seconds
and print the result, until interrupted or --count results are printed.

The configuration file is watched too: editing the timezone, output
format or interval takes effect on the next tick.`,
		Example: `  gnudate watch tomorrow --changes-only
  gnudate watch --count 3 now --format unix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			w := &watchRun{
				o:           o,
				cmd:         cmd,
				expr:        expression(args),
				out:         cmd.OutOrStdout(),
				count:       count,
				changesOnly: changesOnly,
				cfg:         *o.cfg,
			}
			return w.run(ctx)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Stop after printing this many results (0 = forever)")
	cmd.Flags().BoolVar(&changesOnly, "changes-only", false, "Print only when the result changes")
	return cmd
}

type watchRun struct {
	o           *rootOptions
	cmd         *cobra.Command
	expr        string
	out         io.Writer
	count       int
	changesOnly bool

	mu      sync.Mutex
	cfg     am.Config
	limiter *rate.Limiter
}

func (w *watchRun) run(ctx context.Context) error {
	cfg := w.config()
	w.limiter = rate.NewLimiter(rate.Every(cfg.WatchInterval()), cfg.Watch.Burst)
	log := logger.ComponentLogger("commands.watch")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if path := watchedConfigFile(); path != "" {
		if _, err := am.Watch(ctx, path, w.reload); err != nil {
			log.Warnw("config changes will not be picked up",
				logger.FieldConfigPath, path,
				logger.FieldError, err)
		} else {
			log.Debugw("watching config", logger.FieldConfigPath, path)
		}
	}

	var (
		last    time.Time
		printed int
	)
	for w.count == 0 || printed < w.count {
		if err := w.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		cfg := w.config()
		ref, err := cfg.ReferenceInstant(w.o.now())
		if err != nil {
			return err
		}
		t, err := datetime.ParseAt(ref, w.expr)
		if err != nil {
			return err
		}
		if w.changesOnly && printed > 0 && t.Equal(last) {
			continue
		}
		if err := writeInstant(w.out, cfg.Output, w.expr, t); err != nil {
			return err
		}
		last = t
		printed++
	}
	return nil
}

func (w *watchRun) config() am.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// reload adopts a re-read configuration, keeping the command-line overrides
func (w *watchRun) reload(loaded *am.Config) error {
	cfg := *loaded
	w.o.applyFlags(w.cmd, &cfg)

	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()

	w.limiter.SetLimit(rate.Every(cfg.WatchInterval()))
	w.limiter.SetBurst(cfg.Watch.Burst)
	logger.ComponentLogger("commands.watch").Infow("config reloaded",
		logger.FieldTimezone, cfg.Reference.Timezone,
		logger.FieldFormat, cfg.Output.Format,
		logger.FieldInterval, cfg.WatchInterval())
	return nil
}

// watchedConfigFile returns the highest-precedence config file that exists
func watchedConfigFile() string {
	files := am.ConfigFiles()
	for i := len(files) - 1; i >= 0; i-- {
		if _, err := os.Stat(files[i].Path); err == nil {
			return files[i].Path
		}
	}
	return ""
}
