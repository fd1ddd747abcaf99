package gateway

import "context"

const (
	CodeRazorpay int32 = 1
)

type CreateInput struct {
	Receipt     string
	AmountMinor int64
	Currency    string

	Notes map[string]string
}

type CreateOutput struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	Status         string
}

// Gateway is a hosted-checkout payment gateway. CreateOrder registers a
// provisional order; VerifyPayment authenticates a payment claim against the
// gateway's signing scheme without a network round trip.
type Gateway interface {
	Code() int32
	CreateOrder(ctx context.Context, input *CreateInput) (*CreateOutput, error)
	VerifyPayment(gatewayOrderID, paymentID, signature string) bool
}
