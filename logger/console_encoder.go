package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest palette
const (
	colorTime      = "\x1b[38;5;107m"
	colorComponent = "\x1b[38;5;208m"
	colorMessage   = "\x1b[38;5;223m"
	colorKey       = "\x1b[38;5;65m"
	colorExpr      = "\x1b[38;5;108m"
	colorWarn      = "\x1b[38;5;179m"
	colorWarnBg    = "\x1b[48;5;58m"
	colorError     = "\x1b[38;5;167m"
	colorErrorBg   = "\x1b[48;5;52m"
)

var bufferPool = buffer.NewPool()

// consoleEncoder is a compact, human-readable encoder:
//
//	13:04:35  datetime  resolved  expr="3 days ago" mode=absolute
//
// Every field is printed as key=value in the order it was logged.
type consoleEncoder struct {
	zapcore.Encoder // base encoder for With() fields
	color           bool
	context         []zapcore.Field
}

func newConsoleEncoder(color bool) *consoleEncoder {
	return &consoleEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		color:   color,
	}
}

func (enc *consoleEncoder) Clone() zapcore.Encoder {
	return &consoleEncoder{
		Encoder: enc.Encoder.Clone(),
		color:   enc.color,
		context: append([]zapcore.Field(nil), enc.context...),
	}
}

// AddString and friends are reached through Logger.With; keep the fields so
// that EncodeEntry can print them
func (enc *consoleEncoder) AddString(key, value string) {
	if strings.HasSuffix(key, "Verbose") {
		return
	}
	enc.context = append(enc.context, zap.String(key, value))
}

func (enc *consoleEncoder) AddInt64(key string, value int64) {
	enc.context = append(enc.context, zap.Int64(key, value))
}

func (enc *consoleEncoder) AddInt(key string, value int) {
	enc.context = append(enc.context, zap.Int(key, value))
}

func (enc *consoleEncoder) AddFloat64(key string, value float64) {
	enc.context = append(enc.context, zap.Float64(key, value))
}

func (enc *consoleEncoder) AddDuration(key string, value time.Duration) {
	enc.context = append(enc.context, zap.Duration(key, value))
}

func (enc *consoleEncoder) AddTime(key string, value time.Time) {
	enc.context = append(enc.context, zap.Time(key, value))
}

func (enc *consoleEncoder) AddBool(key string, value bool) {
	enc.context = append(enc.context, zap.Bool(key, value))
}

func (enc *consoleEncoder) AddReflected(key string, value interface{}) error {
	enc.context = append(enc.context, zap.Any(key, value))
	return nil
}

func (enc *consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := bufferPool.Get()

	enc.paint(out, colorTime, ent.Time.Format("15:04:05"))

	if ent.Level != zapcore.InfoLevel && ent.Level != zapcore.DebugLevel {
		out.AppendString("  ")
		out.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		out.AppendString("  ")
		enc.paint(out, colorComponent, abbreviateName(ent.LoggerName))
	}

	out.AppendString("  ")
	enc.paint(out, colorMessage, ent.Message)

	all := append(append([]zapcore.Field(nil), enc.context...), fields...)
	for _, f := range all {
		key, val, ok := fieldValue(f)
		if !ok {
			continue
		}
		out.AppendString(" ")
		enc.paint(out, colorKey, key+"=")
		if key == FieldExpr || key == FieldResult {
			enc.paint(out, colorExpr, val)
		} else {
			out.AppendString(val)
		}
	}

	out.AppendString("\n")
	return out, nil
}

func (enc *consoleEncoder) paint(out *buffer.Buffer, color, s string) {
	if !enc.color {
		out.AppendString(s)
		return
	}
	out.AppendString(color)
	out.AppendString(s)
	out.AppendString(colorReset)
}

// levelString returns bold + colored + background for WARN/ERROR
func (enc *consoleEncoder) levelString(level zapcore.Level) string {
	if !enc.color {
		return level.CapitalString()
	}
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn + "WARN" + colorReset
	default:
		return colorBold + colorErrorBg + colorError + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: commands.batch -> c.batch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// fieldValue renders one field through a map encoder so every zap field
// type prints, including errors, arrays and objects
func fieldValue(f zapcore.Field) (string, string, bool) {
	if f.Type == zapcore.SkipType {
		return "", "", false
	}
	m := zapcore.NewMapObjectEncoder()
	f.AddTo(m)
	if len(m.Fields) == 0 {
		return "", "", false
	}
	key := f.Key
	v, ok := m.Fields[key]
	if !ok {
		// zap.Error adds "<key>Verbose" next to "<key>" for rich errors
		for k, val := range m.Fields {
			key, v = k, val
			break
		}
	}
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " \t\"=") {
		s = fmt.Sprintf("%q", s)
	}
	return key, s, true
}
