package repository

import (
	"context"

	"github.com/consultbridge/ms-go-orders/app/entity"
)

type VerificationRepository struct {
	db DBTX
}

func NewVerificationRepository(db DBTX) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, verification *entity.Verification) error {
	query := `
		INSERT INTO order_verifications (
			order_id, gateway_order_id, payment_id, signature, status, error, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableUint64Value(verification.OrderID),
		verification.GatewayOrderID,
		verification.PaymentID,
		verification.Signature,
		verification.Status,
		nullableStringValue(verification.Error),
		verification.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	verification.ID = uint64(id)

	return nil
}
