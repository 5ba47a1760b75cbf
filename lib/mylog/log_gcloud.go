package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/MarcGrol/storefront/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

// structuredLogger writes one JSON object per line in the format that Cloud Logging understands.
// No timestamp is written: Cloud Logging adds one when it ships the line.
type structuredLogger struct {
	componentName string
	base          zerolog.Logger
}

func newGcloudLogger(componentName string) Logger {
	return structuredLogger{
		componentName: componentName,
		base:          zerolog.New(os.Stdout),
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	event := l.base.Log().
		Str("component", l.componentName).
		Str("severity", string(severity)).
		Dict("logging.googleapis.com/labels", zerolog.Dict().Str("session", traceLabel))

	trace := mycontext.TraceFromContext(ctx)
	if trace != "" {
		event = event.Str("logging.googleapis.com/trace", trace)
	}

	event.Msg(l.componentName + ":" + fmt.Sprintf(format, a...))
}
