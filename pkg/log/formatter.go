package log

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ANSI color codes per log level, matching the traversal's terminal output
const (
	colorWhite  = "\033[97m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorBlue   = "\033[94m"
	colorReset  = "\033[0m"
)

// LevelColor returns the ANSI color code for a logrus level.
// Kept as a pure function so the mapping is testable without a terminal.
func LevelColor(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorBlue
	case logrus.InfoLevel:
		return colorWhite
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	}
	return colorReset
}

// ColoredFormatter renders entries as "LEVEL - message [key=value ...]" with
// the whole line wrapped in the level's color
type ColoredFormatter struct {
	DisableColors bool // Skip ANSI codes (e.g. when output is not a terminal)
}

// Format implements logrus.Formatter
func (f *ColoredFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableColors {
		b.WriteString(LevelColor(entry.Level))
	}

	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(" - ")
	b.WriteString(entry.Message)

	// Fields in deterministic order
	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}

	if !f.DisableColors {
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}
