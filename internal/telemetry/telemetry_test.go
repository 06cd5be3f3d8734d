package telemetry

import (
	"context"
	"errors"
	"testing"
)

func TestDisabledSpansDoNotRecord(t *testing.T) {
	Disable()

	_, span := Tracer("test").Start(context.Background(), "test.span")
	defer span.End()

	if span.IsRecording() {
		t.Error("span should not record after Disable()")
	}
	// Must not panic on a non-recording span.
	Fail(span, errors.New("boom"))
	Fail(span, nil)
}
