package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Init("")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "spans.json")
	shutdown, err := Init(filename)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "convert")
	span.SetAttributes(attribute.String("converter", "compiled"))
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name": "convert"`)
	assert.Contains(t, string(data), "compiled")
	assert.Contains(t, string(data), ServiceName)
}

func TestInitBadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "spans.json"))
	assert.Error(t, err)
}
