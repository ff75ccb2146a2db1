package prep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/louisbranch/plotgod/internal/platform/errors"
	"github.com/louisbranch/plotgod/internal/platform/timeouts"
)

const tracerName = "plotgod/prep"

// DefaultModel is the generation model used when OPENAI_MODEL is unset.
const DefaultModel = "gpt-5.1"

const defaultResponsesURL = "https://api.openai.com/v1/responses"

// Config configures the OpenAI Responses API client.
type Config struct {
	APIKey       string
	Model        string
	ResponsesURL string
	HTTPClient   *http.Client
}

// Client calls the OpenAI Responses API to draft next-session prep.
type Client struct {
	cfg Config
}

// NewClient builds a prep client, defaulting the endpoint, model, and
// HTTP client when unset.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: timeouts.ExternalRequest}
	}
	if strings.TrimSpace(cfg.ResponsesURL) == "" {
		cfg.ResponsesURL = defaultResponsesURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

// Generate sends the user prompt to the model and returns its text
// output verbatim.
func (c *Client) Generate(ctx context.Context, userPrompt string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "prep.generate")
	defer span.End()

	apiKey := strings.TrimSpace(c.cfg.APIKey)
	prompt := strings.TrimSpace(userPrompt)
	if apiKey == "" {
		return "", apperrors.E(apperrors.KindExternal, "openai api key is not configured")
	}
	if prompt == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "prompt is required")
	}
	span.SetAttributes(attribute.String("gen_ai.request.model", c.cfg.Model))

	requestBody, err := json.Marshal(map[string]any{
		"model":             c.cfg.Model,
		"instructions":      SystemPrompt,
		"input":             prompt,
		"temperature":       0.8,
		"max_output_tokens": 2000,
	})
	if err != nil {
		return "", fmt.Errorf("marshal prep request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ResponsesURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build prep request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The API key travels only as an Authorization header and is never
	// echoed in errors or logs.
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindExternal, "prep request failed", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", apperrors.Wrap(apperrors.KindExternal, "read prep error body", err)
		}
		return "", apperrors.Errorf(apperrors.KindExternal, "prep request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", apperrors.Wrap(apperrors.KindExternal, "decode prep response", err)
	}
	outputText := strings.TrimSpace(payload.OutputText)
	if outputText == "" {
		for _, item := range payload.Output {
			for _, content := range item.Content {
				if strings.TrimSpace(content.Text) != "" {
					outputText = strings.TrimSpace(content.Text)
					break
				}
			}
			if outputText != "" {
				break
			}
		}
	}
	if outputText == "" {
		return "", apperrors.E(apperrors.KindExternal, "prep response missing output text")
	}
	return outputText, nil
}
