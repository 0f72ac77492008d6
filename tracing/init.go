package tracing

import (
	"context"

	"github.com/mrlucciola/pow-blockchain/settings"
)

// InitTracer sets up tracing as configured. When tracing is disabled the returned function is a noop
// and spans go to the default noop provider.
func InitTracer(ctx context.Context, serviceName string, tSettings *settings.Settings) (func(context.Context) error, error) {
	if !tSettings.Tracing.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	return InitOtelTracer(ctx, serviceName, tSettings.Tracing.Endpoint, tSettings.Tracing.SampleRate)
}
