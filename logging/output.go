package logging

import (
	"io"
	"os"
	"sync/atomic"
)

// outputBox wraps the writer so atomic.Value always stores one concrete type.
type outputBox struct{ io.Writer }

var output atomic.Value

func init() {
	output.Store(outputBox{os.Stderr})
}

// stderrSink forwards to whatever writer SetOutput installed last, so loggers
// created earlier follow a redirect.
type stderrSink struct{}

func (stderrSink) Write(p []byte) (int, error) {
	return output.Load().(outputBox).Write(p)
}

// SetOutput redirects the stderr sink of every logger and of NewPrettyLogger.
// Commands point it at their own error stream.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output.Store(outputBox{w})
}

// Output returns the writer loggers use in place of stderr.
func Output() io.Writer {
	return stderrSink{}
}
