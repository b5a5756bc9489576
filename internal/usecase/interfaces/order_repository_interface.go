package interfaces

import (
	"context"
	"errors"

	"taskilo_finance/internal/domain/entities"
)

// ErrOrderAccessDenied is returned when an order exists but belongs to a
// different company than the one the caller is acting for.
var ErrOrderAccessDenied = errors.New("access denied: order belongs to different company")

// IOrderRepository reads Taskilo orders. Orders are never written by the
// finance side.
//
// Not-found is reported as a zero-value Order with a nil error.

type IOrderRepository interface {
	GetByID(ctx context.Context, orderID, companyID string) (entities.Order, error)
}
