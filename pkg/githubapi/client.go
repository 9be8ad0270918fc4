package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL = "https://api.github.com"

	// A repo is considered active when it saw a push within this window.
	activeWindowDays = 30

	cacheTTL      = 15 * time.Minute
	cacheCleanup  = 30 * time.Minute
	clientTimeout = 30 * time.Second
)

// Client is a thin GitHub REST v3 client. Responses are cached in-process so
// repeated enrichment of the same repo within a pipeline run costs one call.
type Client struct {
	BaseURL string
	Token   string

	http  *http.Client
	cache *gocache.Cache
}

// NewClient creates a GitHub API client. Token may be empty; unauthenticated
// requests fall under GitHub's much lower rate limit.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Token:   token,
		http:    &http.Client{Timeout: clientTimeout},
		cache:   gocache.New(cacheTTL, cacheCleanup),
	}
}

// RepoDetails is the enriched view of a repository as reported by the API.
type RepoDetails struct {
	GithubId       int64    `json:"id"`
	FullName       string   `json:"full_name"`
	Description    string   `json:"description"`
	Language       string   `json:"language"`
	Stars          int      `json:"stargazers_count"`
	Forks          int      `json:"forks_count"`
	OpenIssues     int      `json:"open_issues_count"`
	Watchers       int      `json:"subscribers_count"`
	Topics         []string `json:"topics"`
	DefaultBranch  string   `json:"default_branch"`
	HasWiki        bool     `json:"has_wiki"`
	HasDiscussions bool     `json:"has_discussions"`
	Archived       bool     `json:"archived"`
	License        *struct {
		SpdxId string `json:"spdx_id"`
	} `json:"license"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	PushedAt  *time.Time `json:"pushed_at"`

	// Derived, not part of the API payload.
	DaysSincePush *int `json:"-"`
	IsActive      bool `json:"-"`
}

// LicenseId returns the SPDX id or empty when the repo carries no license.
func (d *RepoDetails) LicenseId() string {
	if d.License == nil {
		return ""
	}
	return d.License.SpdxId
}

// GetRepo fetches one repository by its owner/name. Returns (nil, nil) when
// the repo does not exist or is inaccessible.
func (c *Client) GetRepo(ctx context.Context, fullName string) (*RepoDetails, error) {
	if cached, found := c.cache.Get(fullName); found {
		return cached.(*RepoDetails), nil
	}

	url := fmt.Sprintf("%s/repos/%s", c.BaseURL, fullName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request for %s: %w", fullName, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github response for %s, code %d, body %s", fullName, res.StatusCode, string(body))
	}

	var details RepoDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("decode github response for %s: %w", fullName, err)
	}

	details.DaysSincePush = daysSincePush(details.PushedAt)
	details.IsActive = details.DaysSincePush == nil || *details.DaysSincePush <= activeWindowDays

	c.cache.Set(fullName, &details, gocache.DefaultExpiration)
	return &details, nil
}

func daysSincePush(pushedAt *time.Time) *int {
	if pushedAt == nil {
		return nil
	}
	days := int(time.Since(*pushedAt).Hours() / 24)
	return &days
}
