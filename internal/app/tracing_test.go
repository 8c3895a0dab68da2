package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// resetTracing сбрасывает глобальное состояние и подмены после теста
func resetTracing(t *testing.T) {
	origExporter, origResource := newExporter, newResource
	tracingOnce = sync.Once{}
	tracingShutdown, tracingErr = nil, nil
	t.Cleanup(func() {
		newExporter, newResource = origExporter, origResource
		tracingOnce = sync.Once{}
		tracingShutdown, tracingErr = nil, nil
	})
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing("proctor_bot", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_ClosesFileWhenExporterFails(t *testing.T) {
	resetTracing(t)

	var written io.Writer
	newExporter = func(w io.Writer) (sdktrace.SpanExporter, error) {
		written = w
		return nil, errors.New("exporter broken")
	}

	_, err := InitTracing("proctor_bot", filepath.Join(t.TempDir(), "traces.json"))
	require.ErrorContains(t, err, "create trace exporter")

	f, ok := written.(*os.File)
	require.True(t, ok)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestInitTracing_ClosesFileWhenResourceFails(t *testing.T) {
	resetTracing(t)

	var written io.Writer
	origExporter := newExporter
	newExporter = func(w io.Writer) (sdktrace.SpanExporter, error) {
		written = w
		return origExporter(w)
	}
	newResource = func(string) (*resource.Resource, error) {
		return nil, errors.New("resource broken")
	}

	_, err := InitTracing("proctor_bot", filepath.Join(t.TempDir(), "traces.json"))
	require.ErrorContains(t, err, "create trace resource")

	f, ok := written.(*os.File)
	require.True(t, ok)
	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestInitTracing_FileOutput(t *testing.T) {
	resetTracing(t)
	path := filepath.Join(t.TempDir(), "traces.json")

	shutdown, err := InitTracing("proctor_bot", path)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
