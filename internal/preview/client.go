package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	// bypassHeader skips the tunneling proxy interstitial the backend sits behind.
	bypassHeader = "ngrok-skip-browser-warning"
	pdfMIME      = "application/pdf"
	// downloads are capped well above any rendered document
	maxPDFBytes = 32 << 20
)

var (
	// ErrNotFound marks a missing artifact; callers render an empty state
	// with a retry affordance rather than a hard failure.
	ErrNotFound = errors.New("preview: artifact not found")
	// ErrNotPDF is returned when a download endpoint answers with anything
	// other than a PDF.
	ErrNotPDF = errors.New("preview: received file is not a PDF")
)

// Client fetches preview images and rendered PDFs from the generation backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a preview client. When baseURL is empty, the client
// serves fake artifacts so pages render without a backend.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type resumeImagesPayload struct {
	Images map[string][]string `json:"images"`
	Detail string              `json:"detail"`
}

type coverImagesPayload struct {
	Images []string `json:"images"`
	Detail string   `json:"detail"`
}

// ResumeImages returns the rendered page image URLs for each filename.
// The response shape is decoded strictly: a payload without the images
// mapping is an error, not something to sniff around.
func (c *Client) ResumeImages(ctx context.Context, sessionID string, filenames []string) (map[string][]string, error) {
	if c == nil || c.baseURL == "" {
		return fakeResumeImages(sessionID, filenames), nil
	}

	body := map[string]any{
		"session_id": sessionID,
		"filenames":  filenames,
	}
	var payload resumeImagesPayload
	if err := c.postJSON(ctx, "/resume/images", body, &payload); err != nil {
		return nil, err
	}
	if payload.Images == nil {
		return nil, fmt.Errorf("preview: unexpected /resume/images response shape")
	}
	return payload.Images, nil
}

// CoverImages returns the rendered page image URLs for a cover letter.
func (c *Client) CoverImages(ctx context.Context, sessionID, filename string) ([]string, error) {
	if c == nil || c.baseURL == "" {
		return fakeCoverImages(sessionID, filename), nil
	}

	body := map[string]string{
		"session_id": sessionID,
		"filename":   filename,
	}
	var payload coverImagesPayload
	if err := c.postJSON(ctx, "/cover/images", body, &payload); err != nil {
		return nil, err
	}
	if payload.Images == nil {
		return nil, fmt.Errorf("preview: unexpected /cover/images response shape")
	}
	return payload.Images, nil
}

// DownloadResume fetches a rendered resume PDF.
func (c *Client) DownloadResume(ctx context.Context, sessionID, filename string) ([]byte, error) {
	return c.download(ctx, "/resume/download", sessionID, filename)
}

// DownloadCover fetches a rendered cover letter PDF.
func (c *Client) DownloadCover(ctx context.Context, sessionID, filename string) ([]byte, error) {
	return c.download(ctx, "/cover/download", sessionID, filename)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out interface{ detail() string }) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(bypassHeader, "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("preview: %s status %d: %s", path, resp.StatusCode, drainError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	// some backends answer 200 with a detail string instead of a 404
	if strings.Contains(strings.ToLower(out.detail()), "not found") {
		return ErrNotFound
	}
	return nil
}

func (p *resumeImagesPayload) detail() string { return p.Detail }
func (p *coverImagesPayload) detail() string  { return p.Detail }

func (c *Client) download(ctx context.Context, path, sessionID, filename string) ([]byte, error) {
	if c == nil || c.baseURL == "" {
		return fakePDF(sessionID, filename), nil
	}

	q := url.Values{}
	q.Set("session_id", sessionID)
	q.Set("filename", filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", pdfMIME)
	req.Header.Set(bypassHeader, "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("preview: %s status %d: %s", path, resp.StatusCode, drainError(resp.Body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, pdfMIME) {
		return nil, ErrNotPDF
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
