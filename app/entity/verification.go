package entity

import "time"

const (
	VerificationStatusProcessed int32 = 10
	VerificationStatusRejected  int32 = 20
)

type Verification struct {
	ID uint64

	OrderID *uint64

	GatewayOrderID string
	PaymentID      string
	Signature      string
	Status         int32
	Error          *string

	CreatedAt time.Time
}
