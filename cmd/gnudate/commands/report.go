package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/teranos/gnudate/errors"
	"github.com/teranos/gnudate/grammar"
	"github.com/teranos/gnudate/logger"
)

// Execute runs the command tree and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Cleanup()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err, logger.IsTerminal(os.Stderr))
		return 1
	}
	return 0
}

// reportError prints err with its hints. Parse errors show the input with
// the offending span marked.
func reportError(w io.Writer, err error, color bool) {
	var perr *grammar.ParseError
	if errors.As(err, &perr) {
		if color {
			fmt.Fprintln(w, perr.FormatError(grammar.ErrorContextTerminal))
		} else {
			fmt.Fprintln(w, perr.FormatError(grammar.ErrorContextPlain))
		}
	} else {
		label := "error:"
		if color {
			label = pterm.Red(label)
		}
		fmt.Fprintln(w, label, err.Error())
	}

	for _, hint := range errors.GetAllHints(err) {
		if perr != nil && containsString(perr.Suggestions, hint) {
			continue
		}
		if color {
			hint = pterm.Gray(hint)
		}
		fmt.Fprintln(w, "  hint:", hint)
	}
}

// plainMessage renders err on one line for per-line reports
func plainMessage(err error) string {
	var perr *grammar.ParseError
	if errors.As(err, &perr) {
		msg := perr.Message
		if perr.Offset >= 0 {
			msg = fmt.Sprintf("%s (at offset %d)", msg, perr.Offset)
		}
		if len(perr.Suggestions) > 0 {
			msg += "; " + perr.Suggestions[0]
		}
		return msg
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
