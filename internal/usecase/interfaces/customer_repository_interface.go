package interfaces

import (
	"context"

	"taskilo_finance/internal/domain/entities"
)

// ICustomerRepository abstracts persistence for finance customers.
//
// The order sync needs to:
//   - resolve a customer by the Taskilo-side customer id
//   - search customers of a company by free text (email dedup)
//   - create an auto-generated customer when no match exists
//
// Not-found is reported as a zero-value Customer with a nil error.

type ICustomerRepository interface {
	FindByTaskiloID(ctx context.Context, taskiloCustomerID, companyID string) (entities.Customer, error)
	Search(ctx context.Context, companyID, searchTerm string) ([]entities.Customer, error)
	Create(ctx context.Context, c entities.Customer, userID, companyID string) (entities.Customer, error)
}
