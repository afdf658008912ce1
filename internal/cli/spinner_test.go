package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Computing layout...")
	time.Sleep(3 * spinnerInterval)
	s.Update("Writing artifacts...")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	for _, want := range []string{"Computing layout...", "Writing artifacts..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output = %q, want the line cleared at the end", out)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop, want false")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := startSpinner(context.Background(), &buf, "Rendering...")
	s.Stop()
	n := buf.Len()
	s.Stop()
	s.Stop()
	if buf.Len() != n {
		t.Errorf("repeated Stop wrote %d more bytes", buf.Len()-n)
	}
}

func TestSpinnerContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancelled", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), spinnerInterval/2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var buf bytes.Buffer
			s := startSpinner(ctx, &buf, "Computing layout...")
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner did not stop with its context")
			}
			if !s.Cancelled() {
				t.Error("Cancelled() = false, want true")
			}
			s.Stop()
		})
	}
}
