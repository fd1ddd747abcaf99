package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RunStaleOrderAuditBatch reports orders stuck in created status past the
// configured threshold. Order state is strictly created -> paid, so the audit
// only logs; it never mutates records.
func (s *OrderService) RunStaleOrderAuditBatch(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-s.ordersCfg.StaleCreatedAfter)

	items, err := s.orderRepo.ListStaleCreated(ctx, cutoff, s.batchSize())
	if err != nil {
		return err
	}

	for _, order := range items {
		if order == nil {
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"order_id":         order.ID,
			"gateway_order_id": order.GatewayOrderID,
			"receipt":          order.Receipt,
			"currency":         order.Currency,
			"amount_minor":     order.AmountMinor,
			"age":              now.Sub(order.CreatedAt).String(),
		}).Warn("stale_created_order")
	}

	if len(items) > 0 {
		s.logger.WithField("count", len(items)).Warn("Stale created orders detected")
	}

	return nil
}
