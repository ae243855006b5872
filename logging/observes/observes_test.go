package observes

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestNewTracerWithoutEndpoint(t *testing.T) {
	shutdown, err := NewTracer(&TracerOption{})
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestNewSentryWithoutDsn(t *testing.T) {
	flush, err := NewSentry(nil)
	if err != nil {
		t.Fatal(err)
	}
	flush()
}

func TestTracingContextNoop(t *testing.T) {
	tc := NewTracingContext(context.Background(), LayerService, "run")
	tc.SetAttributes(attribute.Int("jobs", 3))
	tc.RecordError(errors.New("x"))
	tc.RecordError(nil)
	if tc.Context() == nil {
		t.Fatal("nil context")
	}
	tc.End()

	if LayerRepo.String() != "Repository" {
		t.Errorf("layer name = %s", LayerRepo)
	}
}
