package extern

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"symex/internal/errors"
)

// ConsoleFailureLogger renders failures to a writer (stdout by default)
// using github.com/fatih/color the way main.go/cmd/kanso-cli/main.go color
// their parse-error and success reports: red for assertion violations and
// unevaluatable/unsupported aborts, yellow for cancellation, green is left
// to callers for the "no failures" success banner. The model dump,
// backtrace placeholder, and printed predicate follow original_source's
// PrintingFailureLogger.
type ConsoleFailureLogger struct {
	Out io.Writer
}

// NewConsoleFailureLogger returns a logger writing to os.Stdout.
func NewConsoleFailureLogger() *ConsoleFailureLogger {
	return &ConsoleFailureLogger{Out: os.Stdout}
}

func (l *ConsoleFailureLogger) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

// LogFailure implements FailureLogger.
func (l *ConsoleFailureLogger) LogFailure(record FailureRecord) {
	out := l.out()
	banner := color.New(color.FgRed, color.Bold)
	if record.Kind == errors.KindCancellation {
		banner = color.New(color.FgYellow, color.Bold)
	}

	banner.Fprintf(out, "[context %d] %s\n", record.ContextID, record.Kind)
	if record.Predicate != nil {
		fmt.Fprintf(out, "  predicate: %s\n", record.Predicate.String())
	}
	if len(record.Model) > 0 {
		fmt.Fprintln(out, "  model:")
		names := make([]string, 0, len(record.Model))
		for name := range record.Model {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "    %s = 0x%x\n", name, record.Model[name])
		}
	}
	if len(record.Backtrace) > 0 {
		fmt.Fprintln(out, "  backtrace:")
		for i, frame := range record.Backtrace {
			fmt.Fprintf(out, "    #%d %s\n", i, frame)
		}
	} else {
		fmt.Fprintln(out, "  backtrace: (unavailable)")
	}
}
