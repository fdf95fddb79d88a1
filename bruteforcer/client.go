package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// Client talks to a running solver server over its REST API
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) ListPuzzles(ctx context.Context) ([]*service.PuzzleInfo, error) {
	var resp struct {
		Puzzles []*service.PuzzleInfo `json:"puzzles"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/puzzles", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Puzzles, nil
}

func (c *Client) Solve(ctx context.Context, req service.SolveRequest) (*service.RunInfo, error) {
	var run service.RunInfo
	if err := c.do(ctx, http.MethodPost, "/api/solve", req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (c *Client) Replay(ctx context.Context, runID string) (*service.ReplayResponse, error) {
	var replay service.ReplayResponse
	if err := c.do(ctx, http.MethodGet, "/api/runs/"+url.PathEscape(runID)+"/replay", nil, &replay); err != nil {
		return nil, err
	}
	return &replay, nil
}

func (c *Client) DeleteRun(ctx context.Context, runID string) error {
	return c.do(ctx, http.MethodDelete, "/api/runs/"+url.PathEscape(runID), nil, nil)
}
