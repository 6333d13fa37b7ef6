package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/datetime"
	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/logger"
)

// batchLine is one input line split into its expression and per-line options
type batchLine struct {
	expr     string
	ref      string
	tz       string
	duration bool
}

// parseBatchLine splits a line the way a shell would. Leading options
// (--ref=, --tz=, --duration) apply to that line only; everything after them,
// or after "--", is the expression.
func parseBatchLine(line string) (batchLine, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return batchLine{}, errors.Wrap(err, "unbalanced quotes")
	}

	var bl batchLine
	i := 0
	for ; i < len(words); i++ {
		w := words[i]
		if w == "--" {
			i++
			break
		}
		if !strings.HasPrefix(w, "--") {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(w, "--"), "=")
		switch name {
		case "duration":
			bl.duration = true
			continue
		case "ref", "tz":
		default:
			return batchLine{}, errors.Newf("unknown line option %q", w)
		}
		if !hasValue {
			if i+1 >= len(words) {
				return batchLine{}, errors.Newf("line option %q needs a value", w)
			}
			i++
			value = words[i]
		}
		if name == "ref" {
			bl.ref = value
		} else {
			bl.tz = value
		}
	}
	bl.expr = strings.Join(words[i:], " ")
	return bl, nil
}

func newBatchCmd(o *rootOptions) *cobra.Command {
	var failFast bool
	cmd := &cobra.Command{
		Use:   "batch [file...]",
		Short: "Resolve one expression per input line",
		Long: `Resolve one expression per line of the given files, or of stdin.

Blank lines and lines starting with # are skipped. A line may start with
options that apply to it alone:

  --ref=2021-02-14T15:04:05Z   fixed reference instant
  --tz="America/New_York"      reference timezone
  --duration                   measure the line as a duration

Failed lines are reported on stderr and processing continues.`,
		Example: `  printf 'tomorrow\n--tz=Asia/Tokyo next monday 9am\n' | gnudate batch
  gnudate batch expressions.txt --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			b := &batchRun{o: o, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), failFast: failFast}
			for _, name := range args {
				if err := b.runSource(cmd.Context(), cmd.InOrStdin(), name); err != nil {
					return err
				}
			}
			return b.finish()
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first line that fails")
	return cmd
}

type batchRun struct {
	o        *rootOptions
	out      io.Writer
	errOut   io.Writer
	failFast bool

	total  int
	failed int
}

func (b *batchRun) runSource(ctx context.Context, stdin io.Reader, name string) error {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, "failed to open %s", name)
		}
		defer f.Close()
		r = f
	}
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b.total++

		lineCtx := logger.WithComponent(logger.WithRequestID(ctx, uuid.NewString()), "batch")
		log := logger.ChildLogger(logger.LoggerFromContext(lineCtx), logger.FieldLine, lineNo, logger.FieldSource, name)

		if err := b.runLine(line, log); err != nil {
			b.failed++
			log.Debugw("line failed", logger.FieldError, err)
			fmt.Fprintf(b.errOut, "%s:%d: %s\n", name, lineNo, plainMessage(err))
			if b.failFast {
				return b.finish()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	return nil
}

func (b *batchRun) runLine(line string, log *zap.SugaredLogger) error {
	bl, err := parseBatchLine(line)
	if err != nil {
		return err
	}

	cfg := *b.o.cfg
	if bl.ref != "" {
		cfg.Reference.Fixed = bl.ref
	}
	if bl.tz != "" {
		cfg.Reference.Timezone = bl.tz
	}
	ref, err := cfg.ReferenceInstant(b.o.now())
	if err != nil {
		return err
	}

	start := time.Now()
	if bl.duration {
		return b.duration(cfg.Output, ref, bl.expr)
	}
	t, err := datetime.ParseAt(ref, bl.expr)
	if err != nil {
		return err
	}
	log.Debugw("line resolved",
		logger.FieldExpr, bl.expr,
		logger.FieldResult, t.Format(time.RFC3339Nano),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return writeInstant(b.out, cfg.Output, bl.expr, t)
}

func (b *batchRun) duration(out am.OutputConfig, ref time.Time, expr string) error {
	delta, err := datetime.ParseDelta(expr)
	if err != nil {
		return err
	}
	d, err := delta.DurationFrom(ref)
	if err != nil {
		return err
	}
	return writeDuration(b.out, out, durationRecord{
		Expression: expr,
		Duration:   d.String(),
		Seconds:    d.Seconds(),
		Delta:      delta.String(),
	})
}

func (b *batchRun) finish() error {
	if logger.ShouldOutput(b.o.cfg.Log.Verbosity, logger.OutputSummary) {
		logger.ComponentLogger("commands.batch").Infow("batch complete",
			logger.FieldCount, b.total,
			logger.FieldFailed, b.failed)
	}
	if b.failed > 0 {
		return errors.Newf("%d of %d expressions failed", b.failed, b.total)
	}
	return nil
}
