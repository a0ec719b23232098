package downstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ExecutorClient talks to the code-execution service. Request bodies
// are relayed verbatim; only the executor interprets their shape.
type ExecutorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewExecutorClient(baseURL string, timeout time.Duration) *ExecutorClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ExecutorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit posts the raw code payload for the given language and returns
// the executor's response body verbatim.
func (c *ExecutorClient) Submit(ctx context.Context, language string, payload []byte) (string, error) {
	endpoint := c.baseURL + "/submit/" + url.PathEscape(language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build executor request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executor request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read executor response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("executor response status %d: %s", resp.StatusCode, string(raw))
	}
	return string(raw), nil
}
