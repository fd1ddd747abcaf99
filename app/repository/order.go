package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/consultbridge/ms-go-orders/app/entity"
)

var ErrOrderAlreadyExists = errors.New("order already exists")

type OrderFilter struct {
	GatewayOrderID string
	Receipt        string
	Currency       string
	HasStatus      bool
	Status         int32
	Limit          int32
	Offset         int32
}

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	notesJSON, err := serializeNotes(order.Notes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			gateway_order_id, receipt, gateway, amount_minor, currency,
			status, payment_id, signature, notes_json, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.GatewayOrderID,
		order.Receipt,
		order.Gateway,
		order.AmountMinor,
		order.Currency,
		order.Status,
		nullableStringValue(order.PaymentID),
		nullableStringValue(order.Signature),
		notesJSON,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrOrderAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

// MarkPaid performs the created -> paid transition. The status guard in the
// WHERE clause makes the write a no-op when another verification already
// finalized the order; callers distinguish the two cases via the returned flag.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uint64, paymentID, signature string, now time.Time) (bool, error) {
	query := `
		UPDATE orders SET
			status = ?,
			payment_id = ?,
			signature = ?,
			updated_at = ?
		WHERE id = ? AND status <> ?
	`

	result, err := r.db.ExecContext(ctx, query,
		entity.OrderStatusPaid,
		paymentID,
		signature,
		now,
		id,
		entity.OrderStatusPaid,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint64) (*entity.Order, error) {
	query := `
		SELECT id, gateway_order_id, receipt, gateway, amount_minor, currency,
			status, payment_id, signature, notes_json, created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	order := &entity.Order{}
	if err := scanOrder(r.db.QueryRowContext(ctx, query, id), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	query := `
		SELECT id, gateway_order_id, receipt, gateway, amount_minor, currency,
			status, payment_id, signature, notes_json, created_at, updated_at
		FROM orders
		WHERE gateway_order_id = ?
		LIMIT 1
	`

	order := &entity.Order{}
	if err := scanOrder(r.db.QueryRowContext(ctx, query, gatewayOrderID), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT id, gateway_order_id, receipt, gateway, amount_minor, currency,
			status, payment_id, signature, notes_json, created_at, updated_at
		FROM orders
	`

	conditions := make([]string, 0, 5)
	args := make([]interface{}, 0, 7)

	if strings.TrimSpace(filter.GatewayOrderID) != "" {
		conditions = append(conditions, "gateway_order_id = ?")
		args = append(args, filter.GatewayOrderID)
	}
	if strings.TrimSpace(filter.Receipt) != "" {
		conditions = append(conditions, "receipt = ?")
		args = append(args, filter.Receipt)
	}
	if strings.TrimSpace(filter.Currency) != "" {
		conditions = append(conditions, "currency = ?")
		args = append(args, filter.Currency)
	}
	if filter.HasStatus {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		item, err := scanOrderFromRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) ListStaleCreated(ctx context.Context, cutoff time.Time, limit int32) ([]*entity.Order, error) {
	query := `
		SELECT id, gateway_order_id, receipt, gateway, amount_minor, currency,
			status, payment_id, signature, notes_json, created_at, updated_at
		FROM orders
		WHERE status = ?
		  AND created_at <= ?
		ORDER BY created_at ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, entity.OrderStatusCreated, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		item, err := scanOrderFromRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(scan rowScanner, order *entity.Order) error {
	var paymentID sql.NullString
	var signature sql.NullString
	var notesJSON string

	err := scan.Scan(
		&order.ID,
		&order.GatewayOrderID,
		&order.Receipt,
		&order.Gateway,
		&order.AmountMinor,
		&order.Currency,
		&order.Status,
		&paymentID,
		&signature,
		&notesJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	order.PaymentID = stringPtrFromNull(paymentID)
	order.Signature = stringPtrFromNull(signature)

	notes, err := parseNotes(notesJSON)
	if err != nil {
		return err
	}
	order.Notes = notes

	return nil
}

func scanOrderFromRows(rows *sql.Rows) (*entity.Order, error) {
	item := &entity.Order{}
	if err := scanOrder(rows, item); err != nil {
		return nil, err
	}
	return item, nil
}
