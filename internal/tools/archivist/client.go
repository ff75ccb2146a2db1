// Package archivist imports session summaries from the Archivist API
// into the local campaign store.
package archivist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/platform/timeouts"
)

const tracerName = "plotgod/archivist"

// DefaultBaseURL is the Archivist API root used when no override is set.
const DefaultBaseURL = "https://api.myarchivist.ai/v1"

// pageSize matches the page the original sync script requested; one page
// is assumed to cover the account.
const pageSize = 50

// Campaign is a campaign record returned by the Archivist API.
type Campaign struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Session is a session record returned by the Archivist API.
type Session struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	SessionDate string `json:"session_date"`
	CreatedAt   string `json:"created_at"`
}

// ClientConfig configures the Archivist API client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client reads campaigns and sessions from the Archivist API.
type Client struct {
	cfg ClientConfig
}

// NewClient builds an Archivist client, defaulting the endpoint and the
// HTTP client when unset.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: timeouts.ExternalRequest}
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg}
}

// Campaigns returns the first page of campaigns visible to the API key.
func (c *Client) Campaigns(ctx context.Context) ([]Campaign, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "archivist.campaigns")
	defer span.End()

	params := url.Values{}
	params.Set("page", "1")
	params.Set("size", strconv.Itoa(pageSize))

	var page struct {
		Data []Campaign `json:"data"`
	}
	if err := c.get(ctx, "/campaigns", params, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Sessions returns the first page of sessions for an Archivist campaign.
func (c *Client) Sessions(ctx context.Context, campaignID string) ([]Session, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "archivist.sessions")
	defer span.End()
	span.SetAttributes(attribute.String("archivist.campaign_id", campaignID))

	params := url.Values{}
	params.Set("campaign_id", campaignID)
	params.Set("page", "1")
	params.Set("size", strconv.Itoa(pageSize))

	var page struct {
		Data []Session `json:"data"`
	}
	if err := c.get(ctx, "/sessions", params, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	if apiKey == "" {
		return apperrors.E(apperrors.KindExternal, "archivist api key is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build archivist request: %w", err)
	}
	req.Header.Set("x-api-key", apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindExternal, "archivist request failed", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return apperrors.Wrap(apperrors.KindExternal, "read archivist error body", err)
		}
		return apperrors.Errorf(apperrors.KindExternal, "archivist %s status %d: %s", path, res.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return apperrors.Wrap(apperrors.KindExternal, "decode archivist response", err)
	}
	return nil
}
