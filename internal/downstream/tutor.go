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

// Tutor service paths. The gateway forwards opaque JSON to these and
// whatever comes back is returned untouched to the caller.
const (
	TutorPathQuizGenerate   = "/quiz/generate"
	TutorPathQuizEvaluate   = "/quiz/evaluate"
	TutorPathCodeReview     = "/code/review"
	TutorPathCodeChat       = "/code/chat"
	TutorPathIncompleteCode = "/challenge/incomplete-code"
	TutorPathOutputBased    = "/challenge/output-based"
	TutorPathProblemSolving = "/challenge/problem-solving"
	TutorPathSubmitSolution = "/challenge/submit-solution"
)

// TutorClient talks to the AI tutoring service (quiz generation and
// evaluation, code review and chat, coding challenges).
type TutorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTutorClient(baseURL string, timeout time.Duration) *TutorClient {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &TutorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateQuiz fetches a quiz for the given language.
func (c *TutorClient) GenerateQuiz(ctx context.Context, language string) (string, error) {
	endpoint := c.baseURL + TutorPathQuizGenerate + "?language=" + url.QueryEscape(language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build tutor request failed: %w", err)
	}
	return c.do(req)
}

// Post forwards the raw payload to one of the tutor paths and returns
// the response body verbatim.
func (c *TutorClient) Post(ctx context.Context, path string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build tutor request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *TutorClient) do(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tutor request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tutor response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("tutor response status %d: %s", resp.StatusCode, string(raw))
	}
	return string(raw), nil
}
