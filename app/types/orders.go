package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/consultbridge/ms-go-orders/app/entity"
	"github.com/labstack/echo/v4"
)

const (
	OrderStatusLabelCreated = "created"
	OrderStatusLabelPaid    = "paid"
)

type CreateOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Currency = strings.ToUpper(strings.TrimSpace(body.Currency))

	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be a positive integer in minor units")
	}
	if len(strings.TrimSpace(r.Currency)) != 3 {
		return errors.New("currency must be 3 letters")
	}
	return nil
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func NewVerifyPaymentRequestFromContext(ctx echo.Context) (*VerifyPaymentRequest, error) {
	var body VerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.OrderID = strings.TrimSpace(body.OrderID)
	body.PaymentID = strings.TrimSpace(body.PaymentID)
	body.Signature = strings.TrimSpace(body.Signature)

	return &body, nil
}

func (r *VerifyPaymentRequest) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return errors.New("order_id is required")
	}
	if strings.TrimSpace(r.PaymentID) == "" {
		return errors.New("payment_id is required")
	}
	if strings.TrimSpace(r.Signature) == "" {
		return errors.New("signature is required")
	}
	return nil
}

type GetOrderRequest struct {
	ID uint64
}

func NewGetOrderRequestFromContext(ctx echo.Context) (*GetOrderRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &GetOrderRequest{ID: id}, nil
}

func (r *GetOrderRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid order id")
	}
	return nil
}

type ListOrdersRequest struct {
	GatewayOrderID string
	Receipt        string
	Currency       string
	HasStatus      bool
	Status         int32
	Limit          int32
	Offset         int32
}

func NewListOrdersRequestFromContext(ctx echo.Context) (*ListOrdersRequest, error) {
	req := &ListOrdersRequest{
		GatewayOrderID: strings.TrimSpace(ctx.QueryParam("gateway_order_id")),
		Receipt:        strings.TrimSpace(ctx.QueryParam("receipt")),
		Currency:       strings.ToUpper(strings.TrimSpace(ctx.QueryParam("currency"))),
		Limit:          100,
		Offset:         0,
	}

	statusRaw := strings.ToLower(strings.TrimSpace(ctx.QueryParam("status")))
	if statusRaw != "" {
		status, err := ParseOrderStatusLabel(statusRaw)
		if err != nil {
			return nil, err
		}
		req.HasStatus = true
		req.Status = status
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Limit = int32(limit)
	}

	if offsetRaw := strings.TrimSpace(ctx.QueryParam("offset")); offsetRaw != "" {
		offset, err := strconv.ParseInt(offsetRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Offset = int32(offset)
	}

	return req, nil
}

func (r *ListOrdersRequest) Validate() error {
	if r.Limit == 0 {
		r.Limit = 100
	}
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}

// ParseOrderStatusLabel accepts the public status labels and, for parity with
// internal tooling, their numeric codes.
func ParseOrderStatusLabel(raw string) (int32, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case OrderStatusLabelCreated, "1":
		return entity.OrderStatusCreated, nil
	case OrderStatusLabelPaid, "10":
		return entity.OrderStatusPaid, nil
	default:
		return 0, errors.New("invalid status")
	}
}

type Order struct {
	ID             uint64            `json:"id"`
	GatewayOrderID string            `json:"gateway_order_id"`
	Receipt        string            `json:"receipt"`
	AmountMinor    int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	PaymentID      string            `json:"payment_id,omitempty"`
	Signature      string            `json:"signature,omitempty"`
	Notes          map[string]string `json:"notes,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

type OrderEnvelopeResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type VerifyPaymentResponse struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
