package entity

import "time"

const (
	OrderStatusCreated int32 = 1
	OrderStatusPaid    int32 = 10
)

type Order struct {
	ID uint64

	GatewayOrderID string
	Receipt        string
	Gateway        int32

	AmountMinor int64
	Currency    string

	Status int32

	PaymentID *string
	Signature *string

	Notes map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}
