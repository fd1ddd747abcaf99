package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/consultbridge/ms-go-orders/app/entity"
	"github.com/consultbridge/ms-go-orders/app/factory"
	"github.com/consultbridge/ms-go-orders/app/gateway"
	"github.com/consultbridge/ms-go-orders/app/repository"
	"github.com/consultbridge/ms-go-orders/app/types"
	"github.com/consultbridge/ms-go-orders/config"
)

const (
	defaultListLimit = int32(100)
	defaultBatchSize = int32(100)
)

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	MarkPaid(ctx context.Context, id uint64, paymentID, signature string, now time.Time) (bool, error)
	FindByID(ctx context.Context, id uint64) (*entity.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error)
	List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error)
	ListStaleCreated(ctx context.Context, cutoff time.Time, limit int32) ([]*entity.Order, error)
}

type orderEventRepository interface {
	Create(ctx context.Context, event *entity.OrderEvent) error
}

type verificationRepository interface {
	Create(ctx context.Context, verification *entity.Verification) error
}

type OrderService struct {
	orderRepo        orderRepository
	eventRepo        orderEventRepository
	verificationRepo verificationRepository
	gatewayReg       *gateway.Registry
	ordersCfg        config.OrdersConfig
	logger           logrus.FieldLogger
}

func NewOrderService(
	orderRepo orderRepository,
	eventRepo orderEventRepository,
	verificationRepo verificationRepository,
	gatewayReg *gateway.Registry,
	ordersCfg config.OrdersConfig,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		eventRepo:        eventRepo,
		verificationRepo: verificationRepo,
		gatewayReg:       gatewayReg,
		ordersCfg:        ordersCfg,
		logger:           factory.NewModuleLogger("orders-service"),
	}
}

// CreateOrder registers a provisional order with the gateway and persists the
// local record in created status. No local record is written when the gateway
// call fails.
func (s *OrderService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*entity.Order, error) {
	if req == nil || req.Amount <= 0 || strings.TrimSpace(req.Currency) == "" {
		return nil, ErrInvalidRequest
	}

	gatewayClient, err := s.gatewayReg.Get(gateway.CodeRazorpay)
	if err != nil {
		if errors.Is(err, gateway.ErrGatewayNotSupported) {
			return nil, ErrGatewayUnsupported
		}
		return nil, err
	}

	receipt := "rcpt_" + uuid.NewString()
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	notes := cloneNotes(req.Notes)

	gatewayOutput, err := gatewayClient.CreateOrder(ctx, &gateway.CreateInput{
		Receipt:     receipt,
		AmountMinor: req.Amount,
		Currency:    currency,
		Notes:       notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	now := time.Now().UTC()
	order := &entity.Order{
		GatewayOrderID: gatewayOutput.GatewayOrderID,
		Receipt:        receipt,
		Gateway:        gatewayClient.Code(),
		AmountMinor:    req.Amount,
		Currency:       currency,
		Status:         entity.OrderStatusCreated,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		NewStatus: order.Status,
		CreatedAt: now,
	})

	return order, nil
}

// VerifyPayment authenticates a gateway payment claim and finalizes the order.
// Re-submitting the same valid claim against an already paid order is a no-op
// success; a different payment against a paid order is a conflict.
func (s *OrderService) VerifyPayment(ctx context.Context, req *types.VerifyPaymentRequest) (*entity.Order, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	orderID := strings.TrimSpace(req.OrderID)
	paymentID := strings.TrimSpace(req.PaymentID)
	signature := strings.TrimSpace(req.Signature)
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, ErrInvalidRequest
	}

	gatewayClient, err := s.gatewayReg.Get(gateway.CodeRazorpay)
	if err != nil {
		if errors.Is(err, gateway.ErrGatewayNotSupported) {
			return nil, ErrGatewayUnsupported
		}
		return nil, err
	}

	if !gatewayClient.VerifyPayment(orderID, paymentID, signature) {
		s.persistRejectedVerification(ctx, nil, orderID, paymentID, signature, "signature mismatch")
		return nil, ErrSignatureMismatch
	}

	order, err := s.orderRepo.FindByGatewayOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		s.logger.WithFields(logrus.Fields{
			"gateway_order_id": orderID,
			"payment_id":       paymentID,
		}).Error("Verified payment signature for unknown order")
		s.persistRejectedVerification(ctx, nil, orderID, paymentID, signature, "no order record for gateway order id")
		return nil, ErrOrderNotFound
	}

	if order.Status == entity.OrderStatusPaid {
		return s.finalizeAlreadyPaid(ctx, order, paymentID, signature)
	}

	now := time.Now().UTC()
	updated, err := s.orderRepo.MarkPaid(ctx, order.ID, paymentID, signature, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a race with a concurrent verification; re-read and reconcile.
		current, err := s.orderRepo.FindByID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		return s.finalizeAlreadyPaid(ctx, current, paymentID, signature)
	}

	oldStatus := order.Status
	order.Status = entity.OrderStatusPaid
	order.PaymentID = &paymentID
	order.Signature = &signature
	order.UpdatedAt = now

	_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_paid",
		OldStatus: &oldStatus,
		NewStatus: order.Status,
		PaymentID: &paymentID,
		CreatedAt: now,
	})

	s.persistProcessedVerification(ctx, order.ID, orderID, paymentID, signature)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, req *types.ListOrdersRequest) ([]*entity.Order, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	filter := repository.OrderFilter{
		GatewayOrderID: strings.TrimSpace(req.GatewayOrderID),
		Receipt:        strings.TrimSpace(req.Receipt),
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		HasStatus:      req.HasStatus,
		Status:         req.Status,
		Limit:          limit,
		Offset:         req.Offset,
	}

	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) finalizeAlreadyPaid(ctx context.Context, order *entity.Order, paymentID, signature string) (*entity.Order, error) {
	if order.PaymentID != nil && *order.PaymentID == paymentID {
		s.persistProcessedVerification(ctx, order.ID, order.GatewayOrderID, paymentID, signature)
		return order, nil
	}

	s.logger.WithFields(logrus.Fields{
		"gateway_order_id": order.GatewayOrderID,
		"payment_id":       paymentID,
	}).Error("Paid order re-verified with a different payment id")
	s.persistRejectedVerification(ctx, &order.ID, order.GatewayOrderID, paymentID, signature, "order already paid with a different payment id")
	return nil, ErrOrderConflict
}

func (s *OrderService) persistProcessedVerification(ctx context.Context, orderID uint64, gatewayOrderID, paymentID, signature string) {
	id := orderID
	_ = s.verificationRepo.Create(ctx, &entity.Verification{
		OrderID:        &id,
		GatewayOrderID: gatewayOrderID,
		PaymentID:      paymentID,
		Signature:      signature,
		Status:         entity.VerificationStatusProcessed,
		CreatedAt:      time.Now().UTC(),
	})
}

func (s *OrderService) persistRejectedVerification(ctx context.Context, orderID *uint64, gatewayOrderID, paymentID, signature, reason string) {
	reason = truncate(strings.TrimSpace(reason), 1024)
	_ = s.verificationRepo.Create(ctx, &entity.Verification{
		OrderID:        orderID,
		GatewayOrderID: gatewayOrderID,
		PaymentID:      paymentID,
		Signature:      signature,
		Status:         entity.VerificationStatusRejected,
		Error:          &reason,
		CreatedAt:      time.Now().UTC(),
	})
}

func (s *OrderService) batchSize() int32 {
	if s.ordersCfg.JobBatchSize > 0 {
		return s.ordersCfg.JobBatchSize
	}
	return defaultBatchSize
}

func cloneNotes(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}
