package mapper

import (
	"time"

	"github.com/consultbridge/ms-go-orders/app/entity"
	"github.com/consultbridge/ms-go-orders/app/types"
)

func OrderToResponse(item *entity.Order) *types.Order {
	if item == nil {
		return nil
	}

	return &types.Order{
		ID:             item.ID,
		GatewayOrderID: item.GatewayOrderID,
		Receipt:        item.Receipt,
		AmountMinor:    item.AmountMinor,
		Currency:       item.Currency,
		Status:         OrderStatusLabel(item.Status),
		PaymentID:      derefString(item.PaymentID),
		Signature:      derefString(item.Signature),
		Notes:          cloneNotes(item.Notes),
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToResponse(items []*entity.Order) []*types.Order {
	result := make([]*types.Order, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToResponse(item))
	}
	return result
}

func OrderStatusLabel(status int32) string {
	switch status {
	case entity.OrderStatusPaid:
		return types.OrderStatusLabelPaid
	default:
		return types.OrderStatusLabelCreated
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
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
