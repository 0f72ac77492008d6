package tracing

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mrlucciola/pow-blockchain"

type Options func(s *TraceOptions)

type TraceOptions struct {
	Histogram  prometheus.Histogram
	Counter    prometheus.Counter
	Logger     ulogger.Logger
	LogMessage string
	LogArgs    []interface{}
	LogDebug   bool
	Attributes []attribute.KeyValue
}

// WithHistogram sets the prometheus histogram to be observed when the span is finished.
func WithHistogram(histogram prometheus.Histogram) Options {
	return func(s *TraceOptions) {
		s.Histogram = histogram
	}
}

// WithCounter sets the prometheus counter to be incremented when the span is finished.
func WithCounter(counter prometheus.Counter) Options {
	return func(s *TraceOptions) {
		s.Counter = counter
	}
}

// WithLogMessage sets the logger and log message to be used when starting the span and when the span is finished.
// The log message is formatted with fmt.Sprintf and all arguments are passed to the logger.
// The log message is logged at the INFO level, so keep it to service entry points.
func WithLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		s.Logger = logger
		s.LogMessage = format
		s.LogArgs = args
	}
}

// WithDebugLogMessage is WithLogMessage at the DEBUG level, for hot paths like http handlers.
func WithDebugLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		WithLogMessage(logger, format, args...)(s)
		s.LogDebug = true
	}
}

// WithAttributes adds attributes to the span.
func WithAttributes(attrs ...attribute.KeyValue) Options {
	return func(s *TraceOptions) {
		s.Attributes = append(s.Attributes, attrs...)
	}
}

// StartTracing starts a new span with the given name and returns a context with the span, the span
// and a function to finish the span. An error passed to the finish function is recorded on the span.
func StartTracing(ctx context.Context, name string, setOptions ...Options) (context.Context, trace.Span, func(...error)) {
	// process the options
	options := &TraceOptions{}
	for _, opt := range setOptions {
		opt(options)
	}

	spanCtx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(options.Attributes...))

	start := time.Now()

	if options.Logger != nil && options.LogMessage != "" {
		options.log(options.LogMessage)
	}

	return spanCtx, span, func(errs ...error) {
		for _, err := range errs {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
		}

		span.End()

		if options.Histogram != nil {
			options.Histogram.Observe(float64(time.Since(start).Microseconds()) / 1_000_000)
		}

		if options.Counter != nil {
			options.Counter.Inc()
		}

		if options.Logger != nil && options.LogMessage != "" {
			done := fmt.Sprintf(" DONE in %s", time.Since(start))
			options.log(options.LogMessage + done)
		}
	}
}

func (o *TraceOptions) log(format string) {
	if o.LogDebug {
		o.Logger.Debugf(format, o.LogArgs...)
		return
	}

	o.Logger.Infof(format, o.LogArgs...)
}
