package tracing

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
}

// Setup installs a global tracer provider exporting over OTLP/HTTP. Without
// an endpoint the global no-op provider stays in place.
func Setup(opts Opts) error {
	endpoint := strings.TrimSpace(opts.Config.Otel.Endpoint)
	if endpoint == "" {
		opts.Logger.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing disabled")
		return nil
	}

	exp, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(trimScheme(endpoint)),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.Config.Otel.ServiceName),
		attribute.String("deployment.environment", opts.Config.App.Env),
	))
	if err != nil {
		return fmt.Errorf("failed to build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	opts.Lifecycle.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})

	opts.Logger.Info("Tracing enabled", "endpoint", endpoint)
	return nil
}

// trimScheme accepts both "collector:4318" and "http://collector:4318".
func trimScheme(endpoint string) string {
	for _, p := range []string{"http://", "https://"} {
		if strings.HasPrefix(endpoint, p) {
			return strings.TrimPrefix(endpoint, p)
		}
	}
	return endpoint
}

var Module = fx.Invoke(Setup)
