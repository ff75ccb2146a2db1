package web

import (
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
)

func TestPayloadValuesReadsForm(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("POST", "/api/campaigns", strings.NewReader("name=Aanur+Rising&level=7"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	values, err := payloadValues(request)
	if err != nil {
		t.Fatalf("payloadValues() error = %v", err)
	}
	if values["name"] != "Aanur Rising" {
		t.Fatalf("name = %q, want %q", values["name"], "Aanur Rising")
	}
	if values["level"] != "7" {
		t.Fatalf("level = %q, want %q", values["level"], "7")
	}
}

func TestPayloadValuesStringifiesJSONScalars(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(`{"name":"Brina","level":7,"active":true,"notes":null}`))
	request.Header.Set("Content-Type", "application/json; charset=utf-8")

	values, err := payloadValues(request)
	if err != nil {
		t.Fatalf("payloadValues() error = %v", err)
	}
	if values["name"] != "Brina" {
		t.Fatalf("name = %q, want %q", values["name"], "Brina")
	}
	if values["level"] != "7" {
		t.Fatalf("level = %q, want %q", values["level"], "7")
	}
	if values["active"] != "true" {
		t.Fatalf("active = %q, want %q", values["active"], "true")
	}
	if _, present := values["notes"]; present {
		t.Fatalf("notes = %q, want absent for explicit null", values["notes"])
	}
}

func TestPayloadValuesEmptyJSONBody(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(""))
	request.Header.Set("Content-Type", "application/json")

	values, err := payloadValues(request)
	if err != nil {
		t.Fatalf("payloadValues() error = %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("values = %v, want empty map", values)
	}
}

func TestPayloadValuesRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(`{"name":`))
	request.Header.Set("Content-Type", "application/json")

	_, err := payloadValues(request)
	if err == nil {
		t.Fatal("payloadValues() error = nil, want decode failure")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindInvalidInput {
		t.Fatalf("KindOf(err) = %v, want %v", kind, apperrors.KindInvalidInput)
	}
}

func TestPayloadValuesRejectsNestedValues(t *testing.T) {
	t.Parallel()

	request := httptest.NewRequest("POST", "/api/campaigns", strings.NewReader(`{"name":{"nested":true}}`))
	request.Header.Set("Content-Type", "application/json")

	_, err := payloadValues(request)
	if err == nil {
		t.Fatal("payloadValues() error = nil, want scalar-only failure")
	}
	if got := err.Error(); got != "name must be a string or number." {
		t.Fatalf("error = %q, want scalar-only message", got)
	}
}
