package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const sessionCookieName = "CVALUE_WEB_SESSION"

type SessionData struct {
	ID        string          `json:"id"`
	Locale    string          `json:"locale,omitempty"`
	Theme     string          `json:"theme,omitempty"`
	CSRFToken string          `json:"csrf,omitempty"`
	Bundle    PreviewBundle   `json:"bundle,omitempty"`
	Unlocked  map[string]bool `json:"unlocked,omitempty"`
	Flash     []FlashMessage  `json:"flash,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

// PreviewBundle stores the generated artifact references the preview pages
// read, scoped to the signed session cookie.
type PreviewBundle struct {
	ServiceType     string    `json:"service,omitempty"`
	SessionID       string    `json:"sid,omitempty"`
	ClassicFilename string    `json:"classic,omitempty"`
	ModernFilename  string    `json:"modern,omitempty"`
	CoverSessionID  string    `json:"csid,omitempty"`
	CoverFilename   string    `json:"cover,omitempty"`
	Headline        string    `json:"headline,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// FlashMessage is a one-shot notice rendered on the next page view.
type FlashMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (b PreviewBundle) HasResume() bool {
	return b.SessionID != "" && (b.ClassicFilename != "" || b.ModernFilename != "")
}

func (b PreviewBundle) HasCover() bool {
	return b.CoverSessionID != "" && b.CoverFilename != ""
}

func (b PreviewBundle) HasLinkedIn() bool {
	return b.Headline != "" || b.Summary != ""
}

func (b PreviewBundle) HasBundle() bool {
	return b.HasResume() && b.HasCover()
}

var sessionSignKey []byte
var sessionSecure bool

func init() {
	// signing key: prefer env var; if absent, generate a process-ephemeral one (dev only)
	key := os.Getenv("CVALUE_WEB_SESSION_SIGNING_KEY")
	if key == "" {
		sessionSignKey = make([]byte, 32)
		if _, err := rand.Read(sessionSignKey); err != nil {
			log.Printf("session: failed to generate signing key: %v", err)
			sessionSignKey = []byte("insecure-dev-key-please-set-CVALUE_WEB_SESSION_SIGNING_KEY")
		}
		log.Printf("session: using ephemeral signing key (dev). Set CVALUE_WEB_SESSION_SIGNING_KEY for production.")
	} else {
		sessionSignKey = []byte(key)
	}
	// mark cookies secure in prod (when CVALUE_WEB_ENV=prod)
	sessionSecure = strings.ToLower(os.Getenv("CVALUE_WEB_ENV")) == "prod"
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// ensure cookie is set just before first write if needed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, r, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.wrote && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, r, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// Unlock marks a preview gate as paid for this session.
func (s *SessionData) Unlock(gate string) {
	if s.Unlocked == nil {
		s.Unlocked = make(map[string]bool)
	}
	s.Unlocked[gate] = true
	s.MarkDirty()
}

// IsUnlocked reports whether a gate has been paid for. The bundle gate
// unlocks every individual gate.
func (s *SessionData) IsUnlocked(gate string) bool {
	if s.Unlocked == nil {
		return false
	}
	return s.Unlocked[gate] || s.Unlocked["bundle"]
}

// AddFlash appends a one-shot message shown on the next rendered page.
func (s *SessionData) AddFlash(kind, text string) {
	s.Flash = append(s.Flash, FlashMessage{Kind: kind, Text: text})
	s.MarkDirty()
}

// TakeFlash returns pending flash messages and clears them.
func (s *SessionData) TakeFlash() []FlashMessage {
	if len(s.Flash) == 0 {
		return nil
	}
	out := s.Flash
	s.Flash = nil
	s.MarkDirty()
	return out
}

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, r *http.Request, sd *SessionData) {
	b, _ := json.Marshal(sd)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	val := payload + "." + sig
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

// helpers
func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
