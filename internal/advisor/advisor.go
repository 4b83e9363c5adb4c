package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/testreport"
)

// DefaultURLs are the advisor instances every premerge run reports to.
var DefaultURLs = []string{
	"http://34.82.126.63:5000/upload",
	"http://136.114.125.23:5000/upload",
}

// httpClient is shared across uploads to reuse TCP connections.
var httpClient = &http.Client{Timeout: 5 * time.Second}

// Failure is one failing test case or ninja action in the upload payload.
type Failure struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Payload is the advisor upload document for one build.
type Payload struct {
	SourceType    string    `json:"source_type"`
	BaseCommitSHA string    `json:"base_commit_sha"`
	SourceID      string    `json:"source_id"`
	Failures      []Failure `json:"failures"`
	Platform      string    `json:"platform"`
}

// BuildPayload assembles the upload document from the build's JUnit results
// and ninja logs. Test failures take precedence; ninja failures are only
// reported when no test failed.
func BuildPayload(commitSHA, runNumber string, suites []testreport.TestSuite, ninjaLogs [][]string) Payload {
	payload := Payload{
		SourceType:    sourceType(),
		BaseCommitSHA: commitSHA,
		SourceID:      runNumber,
		Failures:      []Failure{},
		Platform:      strings.ToLower(runtime.GOOS + "-" + runtime.GOARCH),
	}

	for _, suite := range testreport.GetTestFailures(suites) {
		for _, failure := range suite.Failures {
			payload.Failures = append(payload.Failures, Failure{
				Name:    failure.ID,
				Message: failure.Output,
			})
		}
	}

	if len(payload.Failures) == 0 {
		for _, failure := range testreport.FindNinjaFailures(ninjaLogs) {
			payload.Failures = append(payload.Failures, Failure{
				Name:    failure.Action,
				Message: failure.Output,
			})
		}
	}

	return payload
}

func sourceType() string {
	if _, ok := os.LookupEnv("GITHUB_ACTIONS"); ok {
		return "pull_request"
	}
	return "postcommit"
}

// Client uploads payloads to a set of advisor instances.
type Client struct {
	urls []string
}

// NewClient returns a client for the given instances, falling back to
// DefaultURLs when none are given.
func NewClient(urls []string) *Client {
	if len(urls) == 0 {
		urls = DefaultURLs
	}
	return &Client{urls: urls}
}

// Upload posts the payload to every instance. Individual instance failures
// are logged and swallowed so one unreachable advisor never fails a build.
func (c *Client) Upload(ctx context.Context, payload Payload) error {
	logger := ctxlog.FromContext(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("advisor: marshal payload: %w", err)
	}

	for _, url := range c.urls {
		if err := c.post(ctx, url, body); err != nil {
			logger.Warn("Failed to upload to advisor instance.", "url", url, "error", err)
			continue
		}
		logger.Info("Successfully uploaded to advisor instance.", "url", url)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}

// SkipHost reports whether advisor uploads are disabled for the host
// architecture. Uploads from arm64 runners are skipped until the advisor
// grows per-architecture baselines.
func SkipHost() bool {
	return runtime.GOARCH == "arm64"
}
