package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ngsteer/internal/config"
)

func TestSetup_NoneExporter(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "none"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_EmptyExporterBehavesAsNone(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TelemetryConfig{Exporter: "carrier-pigeon"})
	require.Error(t, err)
}

func TestTracer_AlwaysUsable(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test.span")
	span.End()
}
