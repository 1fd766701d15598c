package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cvaluepro.com/cvalue-web/internal/cms"
	"cvaluepro.com/cvalue-web/internal/generate"
	"cvaluepro.com/cvalue-web/internal/i18n"
	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/payment"
	"cvaluepro.com/cvalue-web/internal/preview"
)

// newTestRouter builds the same router as main(), with test paths and the
// backend clients forced into their offline fake mode.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	localesDir = "../../locales"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	var err error
	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "ar"})
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	// empty base URLs switch every client to deterministic fakes
	generateClient = generate.NewClient("")
	previewClient = preview.NewClient("")
	paymentClient = payment.NewClient("")
	artifactStore = preview.NewStore()
	contentStore = cms.NewStore("../../content")
	return newRouter()
}

// bootstrapSession performs a GET / and returns the csrf and session cookie
// values every unsafe request needs.
func bootstrapSession(t *testing.T, srv http.Handler) (csrf, session string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("bootstrap GET / expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "csrf_token":
			csrf = c.Value
		case "CVALUE_WEB_SESSION":
			session = c.Value
		}
	}
	if csrf == "" || session == "" {
		t.Fatalf("expected csrf and session cookies, got csrf=%q session=%q", csrf, session)
	}
	return csrf, session
}

// sessionFromResponse returns the refreshed session cookie value, or the
// previous one when the handler did not rewrite it.
func sessionFromResponse(rec *httptest.ResponseRecorder, prev string) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "CVALUE_WEB_SESSION" && c.Value != "" {
			return c.Value
		}
	}
	return prev
}

func cookieHeader(csrf, session string) string {
	return "csrf_token=" + csrf + "; CVALUE_WEB_SESSION=" + session
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeLocalizedNav_EN(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Career Bundle") {
		t.Fatalf("expected localized nav label 'Career Bundle' in body; body=%s", body)
	}
	if !strings.Contains(body, `dir="ltr"`) {
		t.Fatalf("expected ltr document direction for English; body=%s", body)
	}
	if !strings.Contains(body, `data-service="resume"`) {
		t.Fatalf("expected resume service card marker in body")
	}
}

func TestHomeArabicIsRTL(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/?hl=ar", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `lang="ar"`) || !strings.Contains(body, `dir="rtl"`) {
		t.Fatalf("expected Arabic RTL document attributes; body=%s", body)
	}
	if !strings.Contains(body, "السيرة الذاتية") {
		t.Fatalf("expected Arabic nav label in body")
	}
	if got := rec.Header().Get("Content-Language"); got != "ar" {
		t.Fatalf("expected Content-Language ar, got %q", got)
	}
}

func TestPreviewRedirectsWithoutBundle(t *testing.T) {
	srv := newTestRouter(t)
	for path, dest := range map[string]string{
		"/preview":              "/order/resume",
		"/cover-letter-preview": "/order/cover-letter",
		"/linkedin-preview":     "/order/linkedin",
		"/bundle-preview":       "/order/bundle",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 without a bundle, got %d", path, rec.Code)
		}
		if got := rec.Header().Get("Location"); got != dest {
			t.Fatalf("%s: expected redirect to %s, got %q", path, dest, got)
		}
	}
}

func TestOrderFormUnknownServiceIs404(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/order/ebook", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown service, got %d", rec.Code)
	}
}

func TestOrderSubmitValidationErrors(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("email", "not-an-email")
	req := httptest.NewRequest(http.MethodPost, "/order/resume", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid order form, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Please enter your full name.") {
		t.Fatalf("expected full name error in fragment; body=%s", body)
	}
	if !strings.Contains(body, "Please enter a valid email address.") {
		t.Fatalf("expected email error in fragment; body=%s", body)
	}
}

func TestOrderSubmitRedirectsToPreview(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("full_name", "Sara Ali")
	form.Set("email", "sara@example.com")
	form.Set("job_title", "Product Manager")
	req := httptest.NewRequest(http.MethodPost, "/order/resume", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for htmx order submit, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/preview" {
		t.Fatalf("expected HX-Redirect to /preview, got %q", got)
	}

	// the refreshed session carries the generated bundle
	session = sessionFromResponse(rec, session)
	previewReq := httptest.NewRequest(http.MethodGet, "/preview", nil)
	previewReq.Header.Set("Cookie", cookieHeader(csrf, session))
	previewRec := httptest.NewRecorder()
	srv.ServeHTTP(previewRec, previewReq)
	if previewRec.Code != http.StatusOK {
		t.Fatalf("expected 200 preview after order, got %d; body=%s", previewRec.Code, previewRec.Body.String())
	}
	body := previewRec.Body.String()
	if !strings.Contains(body, `data-guarded="true"`) {
		t.Fatalf("expected guarded preview markup while locked; body=%s", body)
	}
	if got := previewRec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected X-Frame-Options DENY on guarded page, got %q", got)
	}

	// the images fragment carries the watermark and blurs pages past the first
	fragReq := httptest.NewRequest(http.MethodGet, "/preview/images?template=classic", nil)
	fragReq.Header.Set("HX-Request", "true")
	fragReq.Header.Set("Cookie", cookieHeader(csrf, session))
	fragRec := httptest.NewRecorder()
	srv.ServeHTTP(fragRec, fragReq)
	if fragRec.Code != http.StatusOK {
		t.Fatalf("expected 200 images fragment, got %d; body=%s", fragRec.Code, fragRec.Body.String())
	}
	frag := fragRec.Body.String()
	if !strings.Contains(frag, `data-watermark="PREVIEW"`) {
		t.Fatalf("expected watermark attribute while locked; body=%s", frag)
	}
	if !strings.Contains(frag, "Unlock to see this page") {
		t.Fatalf("expected blurred page caption while locked; body=%s", frag)
	}
}

func TestPaymentModalRendersPrice(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/payment?gate=resume", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="payment-modal"`) {
		t.Fatalf("expected payment modal wrapper; body=%s", body)
	}
	if !strings.Contains(body, "$10") {
		t.Fatalf("expected resume price in modal; body=%s", body)
	}

	badReq := httptest.NewRequest(http.MethodGet, "/payment?gate=ebook", nil)
	badRec := httptest.NewRecorder()
	srv.ServeHTTP(badRec, badReq)
	if badRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown gate, got %d", badRec.Code)
	}
}

func TestPaymentStepRejectsInvalidCard(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("gate", "resume")
	form.Set("step", "1")
	form.Set("number", "4242 4242 4242 4241")
	form.Set("exp_month", "12")
	form.Set("exp_year", fmt.Sprint(time.Now().Year()+2))
	form.Set("cvc", "123")
	form.Set("name", "Sara Ali")
	req := httptest.NewRequest(http.MethodPost, "/payment/step", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for failing checksum, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Enter a valid 16-digit card number.") {
		t.Fatalf("expected card number error in fragment; body=%s", body)
	}
	if !strings.Contains(body, `name="step" value="1"`) {
		t.Fatalf("expected wizard to stay on step 1; body=%s", body)
	}
}

func TestPaymentStepAdvancesWithValidCard(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("gate", "resume")
	form.Set("step", "1")
	form.Set("number", "4242 4242 4242 4242")
	form.Set("exp_month", "12")
	form.Set("exp_year", fmt.Sprint(time.Now().Year()+2))
	form.Set("cvc", "123")
	form.Set("name", "Sara Ali")
	req := httptest.NewRequest(http.MethodPost, "/payment/step", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid card step, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="step" value="2"`) {
		t.Fatalf("expected wizard to advance to step 2; body=%s", body)
	}
	// card fields travel forward as hidden inputs
	if !strings.Contains(body, `name="number" value="4242 4242 4242 4242"`) {
		t.Fatalf("expected card number carried as hidden input; body=%s", body)
	}
}

func TestPaymentSubmitIncompleteShowsBanner(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("gate", "resume")
	form.Set("step", "3")
	req := httptest.NewRequest(http.MethodPost, "/payment/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty submit, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Please complete all required fields before paying.") {
		t.Fatalf("expected generic incomplete banner on failed submit; body=%s", body)
	}
	if !strings.Contains(body, "Enter a valid 16-digit card number.") {
		t.Fatalf("expected per-field errors alongside the banner; body=%s", body)
	}
}

func TestPaymentModalCapsInputLengths(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/payment?gate=resume", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	// the caps mirror the server-side field filters
	for _, want := range []string{
		`name="number" inputmode="numeric" autocomplete="cc-number" maxlength="19"`,
		`name="exp_month" inputmode="numeric" maxlength="2"`,
		`name="exp_year" inputmode="numeric" maxlength="4"`,
		`name="cvc" inputmode="numeric" autocomplete="cc-csc" maxlength="3"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected capped input %q in modal; body=%s", want, body)
		}
	}
}

func TestPaymentSubmitMissingTokenMessage(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	// tokenize responds without an id, so the charge never happens
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"card":{"last4":"4242"}}`))
	}))
	defer backend.Close()
	paymentClient = payment.NewClient(backend.URL)
	defer func() { paymentClient = payment.NewClient("") }()

	req := httptest.NewRequest(http.MethodPost, "/payment/submit", strings.NewReader(validPaymentForm(csrf, "resume").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when token id is missing, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Your card could not be verified.") {
		t.Fatalf("expected token-specific failure message; body=%s", body)
	}
	if strings.Contains(body, "We could not process your payment.") {
		t.Fatalf("expected the token message to replace the generic declined one; body=%s", body)
	}
}

// validPaymentForm fills every wizard field with values that pass all steps.
func validPaymentForm(csrf, gate string) url.Values {
	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("gate", gate)
	form.Set("step", "3")
	form.Set("number", "4242 4242 4242 4242")
	form.Set("exp_month", "12")
	form.Set("exp_year", fmt.Sprint(time.Now().Year()+2))
	form.Set("cvc", "123")
	form.Set("name", "Sara Ali")
	form.Set("country", "Kuwait")
	form.Set("line1", "Block 4")
	form.Set("city", "Kuwait City")
	form.Set("street", "Salem Al Mubarak")
	form.Set("avenue", "4th")
	form.Set("first_name", "Sara")
	form.Set("last_name", "Ali")
	form.Set("email", "sara@example.com")
	form.Set("phone_country_code", "+965")
	form.Set("phone_number", "12345678")
	return form
}

func TestPaymentUnlocksDownload(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	// place a resume order so the session has a bundle
	orderForm := url.Values{}
	orderForm.Set("csrf_token", csrf)
	orderForm.Set("full_name", "Sara Ali")
	orderForm.Set("email", "sara@example.com")
	orderForm.Set("job_title", "Product Manager")
	orderReq := httptest.NewRequest(http.MethodPost, "/order/resume", strings.NewReader(orderForm.Encode()))
	orderReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	orderReq.Header.Set("Cookie", cookieHeader(csrf, session))
	orderRec := httptest.NewRecorder()
	srv.ServeHTTP(orderRec, orderReq)
	if orderRec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 order redirect, got %d; body=%s", orderRec.Code, orderRec.Body.String())
	}
	session = sessionFromResponse(orderRec, session)

	// locked: download must be refused
	lockedReq := httptest.NewRequest(http.MethodGet, "/preview/download?template=classic", nil)
	lockedReq.Header.Set("Cookie", cookieHeader(csrf, session))
	lockedRec := httptest.NewRecorder()
	srv.ServeHTTP(lockedRec, lockedReq)
	if lockedRec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before payment, got %d", lockedRec.Code)
	}

	// pay for the resume gate
	payReq := httptest.NewRequest(http.MethodPost, "/payment/submit", strings.NewReader(validPaymentForm(csrf, "resume").Encode()))
	payReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	payReq.Header.Set("HX-Request", "true")
	payReq.Header.Set("Cookie", cookieHeader(csrf, session))
	payRec := httptest.NewRecorder()
	srv.ServeHTTP(payRec, payReq)
	if payRec.Code != http.StatusOK {
		t.Fatalf("expected 200 payment submit, got %d; body=%s", payRec.Code, payRec.Body.String())
	}
	trigger := payRec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "payment:success") || !strings.Contains(trigger, `"gate":"resume"`) {
		t.Fatalf("expected payment:success trigger, got %q", trigger)
	}
	if !strings.Contains(payRec.Body.String(), "data-payment-success") {
		t.Fatalf("expected success fragment in body; body=%s", payRec.Body.String())
	}
	session = sessionFromResponse(payRec, session)

	// unlocked: download streams the PDF
	dlReq := httptest.NewRequest(http.MethodGet, "/preview/download?template=classic", nil)
	dlReq.Header.Set("Cookie", cookieHeader(csrf, session))
	dlRec := httptest.NewRecorder()
	srv.ServeHTTP(dlRec, dlReq)
	if dlRec.Code != http.StatusOK {
		t.Fatalf("expected 200 download after payment, got %d; body=%s", dlRec.Code, dlRec.Body.String())
	}
	if got := dlRec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if got := dlRec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", got)
	}
	if !strings.HasPrefix(dlRec.Body.String(), "%PDF") {
		t.Fatalf("expected PDF bytes in download body")
	}
}

func TestBundlePaymentUnlocksEveryGate(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	orderForm := url.Values{}
	orderForm.Set("csrf_token", csrf)
	orderForm.Set("full_name", "Sara Ali")
	orderForm.Set("email", "sara@example.com")
	orderForm.Set("job_title", "Product Manager")
	orderReq := httptest.NewRequest(http.MethodPost, "/order/bundle", strings.NewReader(orderForm.Encode()))
	orderReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	orderReq.Header.Set("Cookie", cookieHeader(csrf, session))
	orderRec := httptest.NewRecorder()
	srv.ServeHTTP(orderRec, orderReq)
	if orderRec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 order redirect, got %d; body=%s", orderRec.Code, orderRec.Body.String())
	}
	session = sessionFromResponse(orderRec, session)

	payReq := httptest.NewRequest(http.MethodPost, "/payment/submit", strings.NewReader(validPaymentForm(csrf, "bundle").Encode()))
	payReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	payReq.Header.Set("HX-Request", "true")
	payReq.Header.Set("Cookie", cookieHeader(csrf, session))
	payRec := httptest.NewRecorder()
	srv.ServeHTTP(payRec, payReq)
	if payRec.Code != http.StatusOK {
		t.Fatalf("expected 200 payment submit, got %d; body=%s", payRec.Code, payRec.Body.String())
	}
	session = sessionFromResponse(payRec, session)

	// the bundle gate covers the individual resume and cover downloads
	for _, path := range []string{
		"/preview/download?template=classic",
		"/cover-letter-preview/download",
		"/bundle-preview/download?item=resume-modern",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Cookie", cookieHeader(csrf, session))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 after bundle payment, got %d; body=%s", path, rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
			t.Fatalf("%s: expected application/pdf, got %q", path, got)
		}
	}
}

func TestPostWithoutCSRFIsRejected(t *testing.T) {
	srv := newTestRouter(t)
	_, session := bootstrapSession(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader("theme=dark"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", "CVALUE_WEB_SESSION="+session)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without CSRF token, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func TestThemeToggleSetsCookie(t *testing.T) {
	srv := newTestRouter(t)
	csrf, session := bootstrapSession(t, srv)

	form := url.Values{}
	form.Set("csrf_token", csrf)
	form.Set("theme", "dark")
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("Cookie", cookieHeader(csrf, session))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	var themeCookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "theme" {
			themeCookie = c.Value
		}
	}
	if themeCookie != "dark" {
		t.Fatalf("expected theme cookie dark, got %q", themeCookie)
	}
	if !strings.Contains(rec.Body.String(), `id="theme-toggle"`) {
		t.Fatalf("expected toggle fragment in body; body=%s", rec.Body.String())
	}
}

func TestContentPageRenders(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/content/about", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "About CValue") {
		t.Fatalf("expected page title in body")
	}
}

func TestContentPageMissingIs404(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/content/no-such-page", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing content page, got %d", rec.Code)
	}
}

func TestNotFoundPage(t *testing.T) {
	srv := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Fatalf("expected not found copy in body; body=%s", rec.Body.String())
	}
}

func TestSessionMiddlewareSetsCookie(t *testing.T) {
	h := mw.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var seen bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "CVALUE_WEB_SESSION" {
			seen = true
			break
		}
	}
	if !seen {
		t.Fatalf("expected CVALUE_WEB_SESSION cookie to be set, got %v", rec.Result().Header["Set-Cookie"])
	}
}
