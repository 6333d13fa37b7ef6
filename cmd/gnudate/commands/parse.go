package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/gnudate/datetime"
	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/grammar"
)

func expression(args []string) string {
	return strings.Join(args, " ")
}

func newParseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [expression...]",
		Short: "Resolve an expression to an instant",
		Long: `Resolve an expression to an instant, relative to the reference instant.

An empty expression is the start of the reference day.`,
		Example: `  gnudate parse next friday
  gnudate parse "2021-02-14 10:30 +0530"
  gnudate parse --ref 2021-02-14T15:04:05Z 3 days ago`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.reference()
			if err != nil {
				return err
			}
			expr := expression(args)
			t, err := datetime.ParseAt(ref, expr)
			if err != nil {
				return err
			}
			return writeInstant(cmd.OutOrStdout(), o.cfg.Output, expr, t)
		},
	}
}

func newDurationCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "duration <expression...>",
		Short: "Measure a relative expression",
		Long: `Measure a relative expression. Months and years are measured from the
reference instant, so "1 month" is 28 days from February 1.`,
		Example: `  gnudate duration 1 hour 30 minutes
  gnudate duration 2 weeks ago --format unix`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.reference()
			if err != nil {
				return err
			}
			expr := expression(args)
			delta, err := datetime.ParseDelta(expr)
			if err != nil {
				return err
			}
			d, err := datetime.ParseDurationAt(ref, expr)
			if err != nil {
				return err
			}
			return writeDuration(cmd.OutOrStdout(), o.cfg.Output, durationRecord{
				Expression: expr,
				Duration:   d.String(),
				Seconds:    d.Seconds(),
				Delta:      delta.String(),
			})
		},
	}
}

func newAddCmd(o *rootOptions) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "add <relative expression...>",
		Short: "Apply a relative expression to an instant",
		Long: `Apply a relative expression to an instant. Month and year steps clamp
to the last day of the month.`,
		Example: `  gnudate add --to 2021-01-31 1 month
  gnudate add --to "2014-09-05 15:43:21" 4 months 25 days`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.reference()
			if err != nil {
				return err
			}
			base, err := datetime.ParseAt(ref, to)
			if err != nil {
				return errors.Wrap(err, "--to")
			}
			expr := expression(args)
			t, err := datetime.AddRelative(base, expr)
			if err != nil {
				return err
			}
			return writeInstant(cmd.OutOrStdout(), o.cfg.Output, expr, t)
		},
	}
	cmd.Flags().StringVar(&to, "to", "now", "Expression for the instant to add to")
	return cmd
}

func newEpochCmd(o *rootOptions) *cobra.Command {
	var nanos bool
	cmd := &cobra.Command{
		Use:   "epoch [expression...]",
		Short: "Print an expression as seconds since the Unix epoch",
		Example: `  gnudate epoch tomorrow noon utc
  gnudate epoch @1344000 --nanos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.reference()
			if err != nil {
				return err
			}
			expr := expression(args)
			t, err := datetime.ParseAt(ref, expr)
			if err != nil {
				return err
			}
			if nanos {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), t.UnixNano())
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), unixString(t))
			return err
		},
	}
	cmd.Flags().BoolVar(&nanos, "nanos", false, "Print nanoseconds instead of seconds")
	return cmd
}

func newWeekdayCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "weekday <name>",
		Short:   "Look up a weekday name or abbreviation",
		Example: `  gnudate weekday wednes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, ok := datetime.ParseWeekday(args[0])
			if !ok {
				err := errors.NewInvalidInputError("%q is not a weekday", args[0])
				// a weekday position in the grammar yields its spelling suggestions
				var perr *grammar.ParseError
				if _, gerr := grammar.Parse("next " + args[0]); errors.As(gerr, &perr) {
					for _, s := range perr.Suggestions {
						err = errors.WithHint(err, s)
					}
				}
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", day, int(day))
			return err
		},
	}
}
