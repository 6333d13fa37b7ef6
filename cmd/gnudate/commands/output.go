package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/gnudate/am"
	"github.com/teranos/gnudate/errors"
)

// instantRecord is the structured form of a resolved instant
type instantRecord struct {
	Expression string `json:"expression" yaml:"expression" toml:"expression"`
	Time       string `json:"time" yaml:"time" toml:"time"`
	Unix       string `json:"unix" yaml:"unix" toml:"unix"`
	Zone       string `json:"zone" yaml:"zone" toml:"zone"`
	Weekday    string `json:"weekday" yaml:"weekday" toml:"weekday"`
}

// durationRecord is the structured form of a relative expression
type durationRecord struct {
	Expression string  `json:"expression" yaml:"expression" toml:"expression"`
	Duration   string  `json:"duration" yaml:"duration" toml:"duration"`
	Seconds    float64 `json:"seconds" yaml:"seconds" toml:"seconds"`
	Delta      string  `json:"delta" yaml:"delta" toml:"delta"`
}

// writeInstant prints t in the configured output format
func writeInstant(w io.Writer, out am.OutputConfig, expr string, t time.Time) error {
	switch out.Format {
	case am.FormatRFC3339, "":
		_, err := fmt.Fprintln(w, t.Format(time.RFC3339Nano))
		return err
	case am.FormatUnix:
		_, err := fmt.Fprintln(w, unixString(t))
		return err
	case am.FormatLayout:
		_, err := fmt.Fprintln(w, t.Format(out.Layout))
		return err
	}

	return writeStructured(w, out.Format, instantRecord{
		Expression: expr,
		Time:       t.Format(time.RFC3339Nano),
		Unix:       unixString(t),
		Zone:       zoneString(t),
		Weekday:    t.Weekday().String(),
	})
}

// writeDuration prints a relative expression's length
func writeDuration(w io.Writer, out am.OutputConfig, rec durationRecord) error {
	switch out.Format {
	case am.FormatRFC3339, am.FormatLayout, "":
		_, err := fmt.Fprintln(w, rec.Duration)
		return err
	case am.FormatUnix:
		_, err := fmt.Fprintln(w, strconv.FormatFloat(rec.Seconds, 'f', -1, 64))
		return err
	}
	return writeStructured(w, out.Format, rec)
}

func writeStructured(w io.Writer, format string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case am.FormatJSON:
		data, err = json.Marshal(v)
		data = append(data, '\n')
	case am.FormatYAML:
		data, err = yaml.Marshal(v)
	case am.FormatTOML:
		data, err = toml.Marshal(v)
	default:
		return errors.Newf("unsupported format: %s (supported: %s)", format, strings.Join(am.Formats, ", "))
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", format)
	}
	_, err = w.Write(data)
	return err
}

// unixString formats t as seconds since the epoch with the fraction GNU
// date prints for +%s.%N, trailing zeros dropped
func unixString(t time.Time) string {
	s := strconv.FormatInt(t.Unix(), 10)
	if ns := t.Nanosecond(); ns != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	}
	return s
}

// zoneString renders "EST -05:00", or just the offset for unnamed zones
func zoneString(t time.Time) string {
	offset := t.Format("-07:00")
	name, _ := t.Zone()
	if name == "" || name[0] == '+' || name[0] == '-' {
		return offset
	}
	return name + " " + offset
}
