package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/gnudate/datetime"
	"github.com/teranos/gnudate/grammar"
)

func newExplainCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [expression...]",
		Short: "Show how an expression is read, item by item",
		Example: `  gnudate explain "feb 14 at noon, utc"
  gnudate explain -- -2 fridays ago`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := o.reference()
			if err != nil {
				return err
			}
			expr := expression(args)
			items, err := datetime.Explain(expr)
			if err != nil {
				return err
			}
			if err := renderItems(cmd.OutOrStdout(), items); err != nil {
				return err
			}

			t, err := datetime.ParseAt(ref, expr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return writeInstant(cmd.OutOrStdout(), o.cfg.Output, expr, t)
		},
	}
}

// renderItems prints one table row per recognized item
func renderItems(w io.Writer, items []grammar.Item) error {
	data := pterm.TableData{{"#", "Text", "Kind", "Columns", "Meaning"}}
	for i, it := range items {
		data = append(data, []string{
			fmt.Sprint(i + 1),
			it.Text,
			string(it.Fragment.Flavour()),
			fmt.Sprintf("%d-%d", it.Range.Start.Character, it.Range.End.Character),
			it.Fragment.String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
