package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerlens/careerlens-backend/internal/platform/httpx"
	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

const (
	// attemptsPerEndpoint bounds retries within a single endpoint; combined
	// with the ordered endpoint list this caps worst-case latency.
	attemptsPerEndpoint = 2
	rateLimitBackoff    = 2 * time.Second
	maxBackoff          = 10 * time.Second
	requestTimeout      = 30 * time.Second
)

var (
	// ErrCredentialsMissing means no API key is configured; the pipeline must
	// not run at all.
	ErrCredentialsMissing = errors.New("gemini: api key missing")
	// ErrNoResponse means every endpoint and every attempt was exhausted.
	ErrNoResponse = errors.New("gemini: no response from any endpoint")
)

// DefaultEndpoints is the ordered primary-then-fallback endpoint list.
var DefaultEndpoints = []string{
	"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
	"https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent",
}

// Generator is the boundary all LLM-backed stages call through.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	log        *logger.Logger
	apiKey     string
	endpoints  []string
	httpClient *http.Client

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewClient(log *logger.Logger, apiKey string, endpoints []string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrCredentialsMissing
	}
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	return &Client{
		log:        log.With("client", "gemini"),
		apiKey:     apiKey,
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: requestTimeout},
		sleep:      time.Sleep,
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate walks the ordered endpoint list. Within one endpoint a rate-limit
// reply is retried after a fixed backoff; any other failure abandons the
// endpoint and advances to the next. Only full exhaustion yields ErrNoResponse.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	for _, endpoint := range c.endpoints {
		for attempt := 0; attempt < attemptsPerEndpoint; attempt++ {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}

			text, resp, err := c.doOnce(ctx, endpoint, body)
			if err == nil {
				return text, nil
			}

			if resp != nil && httpx.IsRateLimitStatus(resp.StatusCode) {
				// No point sleeping when there is no retry left on this
				// endpoint; advance to the fallback immediately.
				if attempt+1 == attemptsPerEndpoint {
					c.log.Warn("rate limited on final attempt, advancing to fallback", "endpoint", endpoint)
					break
				}
				wait := httpx.JitterSleep(httpx.RetryAfterDuration(resp, rateLimitBackoff, maxBackoff))
				c.log.Warn("rate limited, backing off",
					"endpoint", endpoint,
					"attempt", attempt+1,
					"sleep", wait.String(),
				)
				c.sleep(wait)
				continue
			}

			c.log.Error("endpoint failed, advancing to fallback",
				"endpoint", endpoint,
				"error", err.Error(),
			)
			break
		}
	}
	return "", ErrNoResponse
}

func (c *Client) doOnce(ctx context.Context, endpoint string, body generateRequest) (string, *http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+c.apiKey, &buf)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", resp, readErr
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp, fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", resp, fmt.Errorf("gemini decode: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", resp, fmt.Errorf("gemini reply has no candidates")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", resp, fmt.Errorf("gemini reply is empty")
	}
	return text, resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
