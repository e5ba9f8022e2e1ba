package simulate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/mirall/archetype/internal/domain/types"
)

// client wraps http.Client with the API shapes the simulator speaks.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) start(ctx context.Context, strategy string) (types.Started, error) {
	var started types.Started
	_, err := c.do(ctx, http.MethodPost, "/assessments",
		map[string]string{"strategy": strategy}, &started)
	return started, err
}

func (c *client) next(ctx context.Context, sessionID string) (types.NextQuestion, error) {
	var next types.NextQuestion
	_, err := c.do(ctx, http.MethodGet, "/assessments/"+sessionID+"/next", nil, &next)
	return next, err
}

func (c *client) answer(ctx context.Context, sessionID string, questionID int, picks []string) error {
	_, err := c.do(ctx, http.MethodPost, "/assessments/"+sessionID+"/answers",
		map[string]any{"question_id": questionID, "picks": picks}, nil)
	return err
}

func (c *client) skip(ctx context.Context, sessionID string, questionID int) (types.SkipResult, error) {
	var res types.SkipResult
	_, err := c.do(ctx, http.MethodPost, "/assessments/"+sessionID+"/skip",
		map[string]int{"question_id": questionID}, &res)
	return res, err
}

func (c *client) result(ctx context.Context, sessionID string) (types.Result, error) {
	var res types.Result
	_, err := c.do(ctx, http.MethodGet, "/assessments/"+sessionID+"/result", nil, &res)
	return res, err
}

func (c *client) submit(ctx context.Context, sessionID string) (types.SubmitAck, error) {
	var ack types.SubmitAck
	_, err := c.do(ctx, http.MethodPost, "/assessments/"+sessionID+"/submit", nil, &ack)
	return ack, err
}
