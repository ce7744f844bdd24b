package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

// Client talks to the local diffusion server that renders thumbnails.
// The server owns model loading and file placement; this side only
// submits prompts and reads back the public image path.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.ImageSynthesizer = (*Client)(nil)

// NewClient creates a reusable HTTP client. Image synthesis is slow,
// so the timeout is generous but still bounded.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 5 * time.Minute},
	}
}

// Generate submits a prompt and returns the rendered image's public
// path.
func (c *Client) Generate(ctx context.Context, prompt, filename string) (string, error) {
	payload := map[string]any{
		"prompt":   prompt,
		"filename": filename,
	}

	var resp struct {
		Path string `json:"path"`
	}
	if err := c.post(ctx, "/generate", payload, &resp); err != nil {
		return "", err
	}

	if resp.Path == "" {
		return "", fmt.Errorf("diffusion server returned no path")
	}

	return resp.Path, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
