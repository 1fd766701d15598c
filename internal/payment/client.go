package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default HTTP timeouts and headers for payment backend interactions.
const (
	defaultTimeout = 15 * time.Second
	// bypassHeader skips the tunneling proxy interstitial the backend sits behind.
	bypassHeader = "ngrok-skip-browser-warning"
)

// The charge payload carries fixed test wiring: amount, currency, merchant id
// and callback URLs are placeholders from the mock integration, not pricing
// logic.
const (
	chargeAmount      = 1000
	chargeCurrency    = "usd"
	chargeDescription = "Test payment transaction"
	merchantID        = "TS03A2220251556Hb450108197"
	webhookURL        = "https://example.com/webhook"
	redirectURL       = "https://example.com/success"
)

// ErrMissingToken is returned when the tokenize call succeeds but carries no id.
var ErrMissingToken = errors.New("payment: token id not returned")

// Client issues tokenize and charge calls against the payment backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a payment client. When baseURL is empty, the client
// serves deterministic fake data so the flow works without a backend.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Token mirrors the backend payload for a tokenized card.
type Token struct {
	ID   string    `json:"id"`
	Card TokenCard `json:"card"`
}

// TokenCard is the card summary echoed back by the tokenize call.
type TokenCard struct {
	ID       string `json:"id"`
	Last4    string `json:"last4"`
	Brand    string `json:"brand"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

// Charge mirrors the backend payload for a charge result.
type Charge struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Paid     bool   `json:"paid"`
	Captured bool   `json:"captured"`
}

// CreateToken exchanges raw card details for a one-time token id.
func (c *Client) CreateToken(ctx context.Context, f Form) (Token, error) {
	if c == nil || c.baseURL == "" {
		return fakeToken(f), nil
	}

	clientIP := strings.TrimSpace(f.ClientIP)
	if clientIP == "" {
		clientIP = "127.0.0.1"
	}
	body := map[string]any{
		"card": map[string]any{
			// card number stays a string to avoid precision loss on 16 digits
			"number":    strings.ReplaceAll(f.Number, " ", ""),
			"exp_month": atoiOrZero(f.ExpMonth),
			"exp_year":  atoiOrZero(f.ExpYear),
			"cvc":       atoiOrZero(f.CVC),
			"name":      f.Name,
			"address": map[string]string{
				"country": f.Country,
				"line1":   f.Line1,
				"city":    f.City,
				"street":  f.Street,
				"avenue":  f.Avenue,
			},
		},
		"client_ip": clientIP,
	}

	var token Token
	if err := c.post(ctx, "create-token", body, &token); err != nil {
		return Token{}, err
	}
	if strings.TrimSpace(token.ID) == "" {
		return Token{}, ErrMissingToken
	}
	return token, nil
}

// CreateCharge charges a previously created token with the contact details
// collected in the wizard's last step.
func (c *Client) CreateCharge(ctx context.Context, tokenID string, f Form) (Charge, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return Charge{}, ErrMissingToken
	}
	if c == nil || c.baseURL == "" {
		return fakeCharge(tokenID), nil
	}

	var middle any
	if strings.TrimSpace(f.MiddleName) != "" {
		middle = f.MiddleName
	}
	body := map[string]any{
		"amount":             chargeAmount,
		"currency":           chargeCurrency,
		"customer_initiated": true,
		"threeDSecure":       true,
		"save_card":          true,
		"description":        chargeDescription,
		"metadata":           map[string]any{},
		"receipt": map[string]bool{
			"email": true,
			"sms":   true,
		},
		"reference": map[string]string{
			"transaction": "txn_" + uuid.NewString(),
			"order":       "order_" + uuid.NewString(),
		},
		"customer": map[string]any{
			"first_name":  f.FirstName,
			"middle_name": middle,
			"last_name":   f.LastName,
			"email":       f.Email,
			"phone": map[string]int{
				"country_code": atoiOrZero(strings.TrimPrefix(f.PhoneCountryCode, "+")),
				"number":       atoiOrZero(strings.ReplaceAll(f.PhoneNumber, "-", "")),
			},
		},
		"merchant": map[string]string{"id": merchantID},
		"source":   map[string]string{"id": tokenID},
		"post":     map[string]string{"url": webhookURL},
		"redirect": map[string]string{"url": redirectURL},
	}

	var charge Charge
	if err := c.post(ctx, "create-charge", body, &charge); err != nil {
		return Charge{}, err
	}
	return charge, nil
}

func (c *Client) post(ctx context.Context, op string, body any, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, "payments", op)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
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
	if resp.StatusCode >= 400 {
		return fmt.Errorf("payment: %s status %d: %s", op, resp.StatusCode, drainError(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
