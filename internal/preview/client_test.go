package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResumeImagesDecodesMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/resume/images", r.URL.Path)
		require.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))

		var body struct {
			SessionID string   `json:"session_id"`
			Filenames []string `json:"filenames"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "sess-1", body.SessionID)
		require.Equal(t, []string{"classic.pdf", "modern.pdf"}, body.Filenames)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":{"classic.pdf":["u1","u2"],"modern.pdf":["u3"]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	images, err := c.ResumeImages(context.Background(), "sess-1", []string{"classic.pdf", "modern.pdf"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, images["classic.pdf"])
	require.Equal(t, []string{"u3"}, images["modern.pdf"])
}

func TestResumeImagesRejectsUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pages":["u1"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ResumeImages(context.Background(), "sess-1", []string{"classic.pdf"})
	require.Error(t, err)
}

func TestCoverImagesNotFoundDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[],"detail":"Session not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CoverImages(context.Background(), "sess-1", "cover.pdf")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadResumeRejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>warning page</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.DownloadResume(context.Background(), "sess-1", "classic.pdf")
	require.ErrorIs(t, err, ErrNotPDF)
}

func TestDownloadCoverNotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.DownloadCover(context.Background(), "sess-1", "cover.pdf")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadResumeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "sess-1", r.URL.Query().Get("session_id"))
		require.Equal(t, "classic.pdf", r.URL.Query().Get("filename"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 data"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, err := c.DownloadResume(context.Background(), "sess-1", "classic.pdf")
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4 data"), data)
}

func TestFakeClientServesArtifacts(t *testing.T) {
	c := NewClient("")

	images, err := c.ResumeImages(context.Background(), "sess-1", []string{"classic.pdf"})
	require.NoError(t, err)
	require.NotEmpty(t, images["classic.pdf"])

	data, err := c.DownloadCover(context.Background(), "sess-1", "cover.pdf")
	require.NoError(t, err)
	require.Contains(t, string(data), "%PDF")
}
