package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type RazorpayConfig struct {
	KeyID       string
	KeySecret   string
	BaseURL     string
	HTTPTimeout time.Duration
}

type RazorpayGateway struct {
	cfg    RazorpayConfig
	client *http.Client
}

func NewRazorpayGateway(cfg RazorpayConfig) *RazorpayGateway {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	return &RazorpayGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *RazorpayGateway) Code() int32 {
	return CodeRazorpay
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(g.cfg.KeyID) == "" || strings.TrimSpace(g.cfg.KeySecret) == "" {
		return nil, errors.New("razorpay api credentials are not configured")
	}

	request := struct {
		Amount   int64             `json:"amount"`
		Currency string            `json:"currency"`
		Receipt  string            `json:"receipt"`
		Notes    map[string]string `json:"notes,omitempty"`
	}{
		Amount:   input.AmountMinor,
		Currency: strings.ToUpper(strings.TrimSpace(input.Currency)),
		Receipt:  input.Receipt,
		Notes:    input.Notes,
	}

	body, err := g.postJSON(ctx, "/v1/orders", request)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.ID) == "" {
		return nil, errors.New("razorpay order id missing")
	}

	return &CreateOutput{
		GatewayOrderID: strings.TrimSpace(payload.ID),
		AmountMinor:    payload.Amount,
		Currency:       payload.Currency,
		Status:         payload.Status,
	}, nil
}

func (g *RazorpayGateway) VerifyPayment(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(g.cfg.KeySecret, gatewayOrderID, paymentID, signature)
}

func (g *RazorpayGateway) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("razorpay request failed: path=%s status=%d body=%s", path, resp.StatusCode, string(body))
	}

	return body, nil
}

// SignPayload computes the gateway's payment signature: lowercase-hex
// HMAC-SHA256 over "{order_id}|{payment_id}" keyed with the api secret.
func SignPayload(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyPaymentSignature(secret, gatewayOrderID, paymentID, signature string) bool {
	if strings.TrimSpace(secret) == "" || strings.TrimSpace(signature) == "" {
		return false
	}

	candidate, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := mac.Sum(nil)

	return hmac.Equal(candidate, expected)
}
