package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider is the payment gateway surface: create an order the customer
// pays against, verify the gateway's signature on completion, refund.
type Provider interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Refund(ctx context.Context, paymentID string, amount float64) (string, error)
}

// RazorpayProvider talks to the Razorpay REST API. Amounts cross the wire
// in the smallest currency unit (paise for INR).
type RazorpayProvider struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   "https://api.razorpay.com/v1",
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *RazorpayProvider) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (string, error) {
	payload := map[string]any{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  receipt,
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := p.post(ctx, "/orders", payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// VerifySignature checks the HMAC-SHA256 of "orderID|paymentID" under the
// key secret against the signature the gateway handed the client.
func (p *RazorpayProvider) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (p *RazorpayProvider) Refund(ctx context.Context, paymentID string, amount float64) (string, error) {
	payload := map[string]any{
		"amount": int64(amount * 100),
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := p.post(ctx, "/payments/"+paymentID+"/refund", payload, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (p *RazorpayProvider) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.keyID, p.keySecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
