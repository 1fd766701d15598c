// Package protect applies capture deterrents to preview responses. The
// measures raise the effort of copying unpaid previews; they are not a
// security boundary.
package protect

import "net/http"

// Capability describes the deterrents a preview page carries.
type Capability struct {
	// Watermark text tiled across locked preview images.
	Watermark string
	// BlurLocked renders locked pages blurred behind the unlock gate.
	BlurLocked bool
	// ScriptGuards enables the client-side guard script (key combos,
	// focus-loss blur, print suppression, mobile interstitial).
	ScriptGuards bool
}

// Default is the capability applied to every preview page.
var Default = Capability{
	Watermark:    "PREVIEW",
	BlurLocked:   true,
	ScriptGuards: true,
}

// Apply sets response headers that keep preview content out of shared
// caches and embedded frames.
func (c Capability) Apply(h http.Header) {
	h.Set("Cache-Control", "no-store, max-age=0")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("X-Content-Type-Options", "nosniff")
}

// Unlocked returns the capability with the lock-screen deterrents removed
// while keeping cache and frame headers.
func (c Capability) Unlocked() Capability {
	c.Watermark = ""
	c.BlurLocked = false
	return c
}
