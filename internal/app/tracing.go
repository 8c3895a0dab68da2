package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Точки подмены для тестов
var (
	newExporter = func(w io.Writer) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithWriter(w))
	}
	newResource = func(serviceName string) (*resource.Resource, error) {
		return resource.New(context.Background(),
			resource.WithAttributes(attribute.String("service.name", serviceName)),
		)
	}
)

var (
	tracingOnce     sync.Once
	tracingShutdown func(context.Context) error
	tracingErr      error
)

// InitTracing ставит глобальный tracer provider со stdout-экспортёром.
// output: "" выключает трассировку, "stdout" пишет в stdout, иначе путь к файлу.
// Повторные вызовы возвращают результат первого.
func InitTracing(serviceName, output string) (func(context.Context) error, error) {
	if output == "" {
		return func(context.Context) error { return nil }, nil
	}

	tracingOnce.Do(func() {
		var w io.Writer = os.Stdout
		var file *os.File
		if output != "stdout" {
			f, err := os.Create(output)
			if err != nil {
				tracingErr = fmt.Errorf("create trace output: %w", err)
				return
			}
			file = f
			w = f
		}
		// Файл закрывается здесь, пока провайдер не установлен
		fail := func(err error) {
			tracingErr = err
			if file != nil {
				file.Close()
			}
		}

		exporter, err := newExporter(w)
		if err != nil {
			fail(fmt.Errorf("create trace exporter: %w", err))
			return
		}

		res, err := newResource(serviceName)
		if err != nil {
			fail(fmt.Errorf("create trace resource: %w", err))
			return
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)

		tracingShutdown = func(ctx context.Context) error {
			err := tp.Shutdown(ctx)
			if file != nil {
				if cerr := file.Close(); err == nil {
					err = cerr
				}
			}
			return err
		}
	})

	if tracingErr != nil {
		return nil, tracingErr
	}
	return tracingShutdown, nil
}
