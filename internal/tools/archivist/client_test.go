package archivist

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{APIKey: "ak-1"})
	if client.cfg.HTTPClient == nil {
		t.Fatal("expected non-nil HTTP client")
	}
	if client.cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("base_url = %q, want %q", client.cfg.BaseURL, DefaultBaseURL)
	}
}

func TestCampaignsSendsKeyAndPaging(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		APIKey:  "ak-1",
		BaseURL: "https://archivist.test/v1",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if req.Method != http.MethodGet {
					t.Fatalf("method = %q, want GET", req.Method)
				}
				if got := req.URL.String(); got != "https://archivist.test/v1/campaigns?page=1&size=50" {
					t.Fatalf("url = %q", got)
				}
				if got := req.Header.Get("x-api-key"); got != "ak-1" {
					t.Fatalf("x-api-key = %q", got)
				}
				return response(http.StatusOK, `{"data":[{"id":"arc-1","title":"Tales of Aanur"}]}`), nil
			}),
		},
	})

	campaigns, err := client.Campaigns(context.Background())
	if err != nil {
		t.Fatalf("campaigns: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("campaigns = %d, want 1", len(campaigns))
	}
	if campaigns[0].ID != "arc-1" || campaigns[0].Title != "Tales of Aanur" {
		t.Fatalf("campaign = %+v", campaigns[0])
	}
}

func TestSessionsFiltersByCampaign(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		APIKey:  "ak-1",
		BaseURL: "https://archivist.test/v1",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				if got := req.URL.String(); got != "https://archivist.test/v1/sessions?campaign_id=arc-1&page=1&size=50" {
					t.Fatalf("url = %q", got)
				}
				return response(http.StatusOK, `{"data":[{"id":"s-9","title":"Session 12","summary":"The gates fell.","session_date":"2026-02-01","created_at":"2026-02-02T10:00:00Z"}]}`), nil
			}),
		},
	})

	sessions, err := client.Sessions(context.Background(), "arc-1")
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Title != "Session 12" || got.Summary != "The gates fell." || got.SessionDate != "2026-02-01" {
		t.Fatalf("session = %+v", got)
	}
}

func TestClientErrorIncludesStatusAndBody(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		APIKey: "ak-1",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return response(http.StatusBadGateway, "upstream down"), nil
			}),
		},
	})

	_, err := client.Campaigns(context.Background())
	if err == nil {
		t.Fatal("expected status error")
	}
	if !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("error = %v, want status and body", err)
	}
	if apperrors.KindOf(err) != apperrors.KindExternal {
		t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindExternal)
	}
}

func TestClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				t.Fatalf("round trip should not execute without an api key: %v", req.URL)
				return nil, nil
			}),
		},
	})

	_, err := client.Campaigns(context.Background())
	if err == nil {
		t.Fatal("expected missing key error")
	}
	if apperrors.KindOf(err) != apperrors.KindExternal {
		t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindExternal)
	}
}

func TestClientRoundTripError(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		APIKey: "ak-1",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("dial timeout")
			}),
		},
	})

	_, err := client.Sessions(context.Background(), "arc-1")
	if err == nil || !strings.Contains(err.Error(), "archivist request failed") {
		t.Fatalf("error = %v, want archivist request failed", err)
	}
}

func TestClientMalformedBody(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		APIKey: "ak-1",
		HTTPClient: &http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return response(http.StatusOK, "{not json"), nil
			}),
		},
	})

	_, err := client.Campaigns(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode archivist response") {
		t.Fatalf("error = %v, want decode archivist response", err)
	}
}
