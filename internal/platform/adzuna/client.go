package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careerlens/careerlens-backend/internal/platform/logger"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs/in/search/1"

// Job is one live listing normalized for the analysis result.
type Job struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
}

// Searcher is the live job lookup boundary. It is a soft collaborator: a
// failure yields an empty list, never a pipeline error.
type Searcher interface {
	Search(ctx context.Context, role string) []Job
}

type Client struct {
	log        *logger.Logger
	appID      string
	appKey     string
	baseURL    string
	location   string
	perPage    int
	httpClient *http.Client
}

func NewClient(log *logger.Logger, appID, appKey string) *Client {
	return &Client{
		log:        log.With("client", "adzuna"),
		appID:      strings.TrimSpace(appID),
		appKey:     strings.TrimSpace(appKey),
		baseURL:    defaultBaseURL,
		location:   "India",
		perPage:    5,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		SalaryMin   *float64 `json:"salary_min"`
		SalaryMax   *float64 `json:"salary_max"`
		RedirectURL string   `json:"redirect_url"`
		Description string   `json:"description"`
	} `json:"results"`
}

func (c *Client) Search(ctx context.Context, role string) []Job {
	if c.appID == "" || c.appKey == "" {
		c.log.Warn("adzuna credentials missing, skipping live jobs")
		return []Job{}
	}

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", role)
	q.Set("where", c.location)
	q.Set("results_per_page", fmt.Sprint(c.perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		c.log.Error("build adzuna request", "error", err)
		return []Job{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("adzuna request failed", "error", err)
		return []Job{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("adzuna returned non-200", "status", resp.StatusCode)
		return []Job{}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("read adzuna body", "error", err)
		return []Job{}
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.log.Error("decode adzuna body", "error", err)
		return []Job{}
	}

	jobs := make([]Job, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		jobs = append(jobs, Job{
			Title:       stripEmphasis(r.Title),
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
			Link:        r.RedirectURL,
			Description: excerpt(stripEmphasis(r.Description), 150),
		})
	}
	return jobs
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "<strong>", "")
	return strings.ReplaceAll(s, "</strong>", "")
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
