package requestctx

import (
	"context"
	"testing"
)

func TestRequestIDFromContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "plotgod-42-1")
	got := RequestIDFromContext(ctx)
	if got != "plotgod-42-1" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "plotgod-42-1")
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	got := RequestIDFromContext(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestRequestIDFromContextNil(t *testing.T) {
	got := RequestIDFromContext(nil)
	if got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithRequestIDNilContext(t *testing.T) {
	ctx := WithRequestID(nil, "plotgod-42-2")
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := RequestIDFromContext(ctx); got != "plotgod-42-2" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "plotgod-42-2")
	}
}
