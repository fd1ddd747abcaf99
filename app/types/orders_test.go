package types

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/consultbridge/ms-go-orders/app/entity"
)

func newJSONContext(t *testing.T, method, target, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCreateOrderRequestFromContextNormalizesCurrency(t *testing.T) {
	ctx := newJSONContext(t, http.MethodPost, "/orders", `{"amount":50000,"currency":" inr "}`)

	req, err := NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.Currency != "INR" {
		t.Fatalf("expected normalized currency INR, got %q", req.Currency)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateOrderRequest
		wantErr bool
	}{
		{"valid", CreateOrderRequest{Amount: 50000, Currency: "INR"}, false},
		{"zero amount", CreateOrderRequest{Amount: 0, Currency: "INR"}, true},
		{"negative amount", CreateOrderRequest{Amount: -5, Currency: "INR"}, true},
		{"missing currency", CreateOrderRequest{Amount: 50000}, true},
		{"long currency", CreateOrderRequest{Amount: 50000, Currency: "RUPEES"}, true},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestVerifyPaymentRequestFromContextTrims(t *testing.T) {
	ctx := newJSONContext(t, http.MethodPost, "/orders/verify",
		`{"order_id":" order_abc123 ","payment_id":" pay_xyz789 ","signature":" abc "}`)

	req, err := NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.OrderID != "order_abc123" || req.PaymentID != "pay_xyz789" || req.Signature != "abc" {
		t.Fatalf("expected trimmed fields, got %+v", req)
	}
}

func TestVerifyPaymentRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     VerifyPaymentRequest
		wantErr bool
	}{
		{"valid", VerifyPaymentRequest{OrderID: "order_abc123", PaymentID: "pay_xyz789", Signature: "abc"}, false},
		{"missing order id", VerifyPaymentRequest{PaymentID: "pay_xyz789", Signature: "abc"}, true},
		{"missing payment id", VerifyPaymentRequest{OrderID: "order_abc123", Signature: "abc"}, true},
		{"missing signature", VerifyPaymentRequest{OrderID: "order_abc123", PaymentID: "pay_xyz789"}, true},
		{"whitespace signature", VerifyPaymentRequest{OrderID: "order_abc123", PaymentID: "pay_xyz789", Signature: "   "}, true},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestGetOrderRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	ctx := e.NewContext(req, httptest.NewRecorder())
	ctx.SetParamNames("id")
	ctx.SetParamValues("42")

	parsed, err := NewGetOrderRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.ID != 42 {
		t.Fatalf("expected id 42, got %d", parsed.ID)
	}

	ctx.SetParamValues("abc")
	if _, err := NewGetOrderRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestListOrdersRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders?status=paid&currency=inr&limit=10&offset=5", nil)
	ctx := e.NewContext(req, httptest.NewRecorder())

	parsed, err := NewListOrdersRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.HasStatus || parsed.Status != entity.OrderStatusPaid {
		t.Fatalf("expected paid status filter, got %+v", parsed)
	}
	if parsed.Currency != "INR" {
		t.Fatalf("expected normalized currency, got %q", parsed.Currency)
	}
	if parsed.Limit != 10 || parsed.Offset != 5 {
		t.Fatalf("unexpected paging: limit=%d offset=%d", parsed.Limit, parsed.Offset)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders?status=refunded", nil)
	ctx = e.NewContext(req, httptest.NewRecorder())
	if _, err := NewListOrdersRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for unknown status label")
	}
}

func TestListOrdersRequestValidate(t *testing.T) {
	valid := ListOrdersRequest{Limit: 100}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooLarge := ListOrdersRequest{Limit: 501}
	if err := tooLarge.Validate(); err == nil {
		t.Fatal("expected error for limit > 500")
	}

	negativeOffset := ListOrdersRequest{Limit: 10, Offset: -1}
	if err := negativeOffset.Validate(); err == nil {
		t.Fatal("expected error for negative offset")
	}
}

func TestParseOrderStatusLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want int32
	}{
		{"created", entity.OrderStatusCreated},
		{"paid", entity.OrderStatusPaid},
		{"PAID", entity.OrderStatusPaid},
		{"1", entity.OrderStatusCreated},
		{"10", entity.OrderStatusPaid},
	}
	for _, tc := range cases {
		got, err := ParseOrderStatusLabel(tc.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.raw, tc.want, got)
		}
	}

	if _, err := ParseOrderStatusLabel("refunded"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}
