// Package client is a thin convenience wrapper for CLI tools to call the
// rigconf daemon's JSON API over a Unix-domain socket. It re-exports the
// DTOs from pkg/api so callers get strongly-typed results instead of
// generic maps.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/lc/rigconf/pkg/api"
)

// Client holds an http.Client wired to a Unix socket.
type Client struct {
	hc   *http.Client
	base string // dummy scheme+host for Request.URL (http://unix)
}

// New returns a Client that dials the given Unix-domain socket path.
func New(socketPath string) *Client {
	dial := func(ctx context.Context, _, _ string) (net.Conn, error) {
		return (&net.Dialer{}).DialContext(ctx, "unix", socketPath)
	}
	tr := &http.Transport{DialContext: dial}
	return &Client{hc: &http.Client{Transport: tr}, base: "http://unix"}
}

// --------------------------- commands ------------------------------

// Projects retrieves the available project names.
func (c *Client) Projects(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, "/v1/projects", &out)
	return out, err
}

// Switch asks the daemon to load the named project. With persist set, the
// name also becomes the durable default.
func (c *Client) Switch(ctx context.Context, name string, persist bool) error {
	req := api.SwitchRequest{Name: name, Persist: persist}
	return c.post(ctx, "/v1/project", req)
}

// Value looks up one key across the active project's sections.
func (c *Client) Value(ctx context.Context, key string) (api.ValueResponse, error) {
	var out api.ValueResponse
	err := c.get(ctx, "/v1/value?key="+url.QueryEscape(key), &out)
	return out, err
}

// Section retrieves one section of the active project.
func (c *Client) Section(ctx context.Context, name string) (api.SectionResponse, error) {
	var out api.SectionResponse
	err := c.get(ctx, "/v1/section?name="+url.QueryEscape(name), &out)
	return out, err
}

// Status retrieves the current status of the daemon: active project,
// load counters, uptime and version.
func (c *Client) Status(ctx context.Context) (api.StatusResponse, error) {
	var out api.StatusResponse
	err := c.get(ctx, "/v1/status", &out)
	return out, err
}

// --------------------------- HTTP helpers --------------------------

func (c *Client) post(ctx context.Context, path string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.base+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return responseError(resp)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.base+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return responseError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// responseError surfaces the daemon's error message when one is present.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return fmt.Errorf("daemon returned %s: %s", resp.Status, msg)
	}
	return fmt.Errorf("daemon returned %s", resp.Status)
}
