// Package generate talks to the document generation backend that turns an
// order's details into rendered resume, cover letter, and profile artifacts.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 60 * time.Second
	bypassHeader   = "ngrok-skip-browser-warning"
)

// Request carries the order form details sent to the backend.
type Request struct {
	ServiceType string `json:"service_type"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	JobTitle    string `json:"job_title"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
	Summary     string `json:"summary"`
	TargetRole  string `json:"target_role"`
	Language    string `json:"language"`
}

// Session identifies the generated artifacts for one order.
type Session struct {
	SessionID       string `json:"session_id"`
	ClassicFilename string `json:"classic_filename"`
	ModernFilename  string `json:"modern_filename"`
	CoverSessionID  string `json:"cover_session_id"`
	CoverFilename   string `json:"cover_filename"`
	Headline        string `json:"headline"`
	Summary         string `json:"summary"`
}

// Client creates generation sessions against the backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a generation client. With an empty base URL the
// client fabricates sessions locally so the storefront works end to end
// without a backend.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// CreateSession submits an order and returns the session the preview pages
// fetch artifacts with.
func (c *Client) CreateSession(ctx context.Context, in Request) (*Session, error) {
	if c == nil || c.baseURL == "" {
		return fakeSession(in), nil
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(bypassHeader, "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("generate: create session status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("generate: backend returned no session id")
	}
	return &session, nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
