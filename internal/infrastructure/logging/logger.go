package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction. Quiet wins over Debug.
type Options struct {
	Debug  bool
	Quiet  bool
	Output io.Writer
}

// NewLogger creates the application logger. Diagnostics go to stderr so
// command output on stdout stays machine-readable.
func NewLogger(opts Options) hclog.Logger {
	level := hclog.Info
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	if opts.Debug {
		level = hclog.Debug
	}
	if opts.Quiet {
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "opsctl",
		Level:  level,
		Output: output,
	})
}

// Discard returns a logger that drops everything, for tests
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
