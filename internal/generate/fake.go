package generate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

func fakeSession(in Request) *Session {
	id := randomID("gen")
	s := &Session{
		SessionID:       id,
		ClassicFilename: "classic.pdf",
		ModernFilename:  "modern.pdf",
		Headline:        fakeHeadline(in),
		Summary:         fakeSummary(in),
	}
	if in.ServiceType == "cover-letter" || in.ServiceType == "bundle" {
		s.CoverSessionID = randomID("cov")
		s.CoverFilename = "cover.pdf"
	}
	return s
}

func fakeHeadline(in Request) string {
	role := strings.TrimSpace(in.TargetRole)
	if role == "" {
		role = strings.TrimSpace(in.JobTitle)
	}
	if role == "" {
		return "Results-driven professional"
	}
	return fmt.Sprintf("%s | Driving measurable impact", role)
}

func fakeSummary(in Request) string {
	if s := strings.TrimSpace(in.Summary); s != "" {
		return s
	}
	return "Experienced professional with a track record of delivering results across teams and projects."
}

func randomID(prefix string) string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return prefix + "_" + hex.EncodeToString(b)
}
