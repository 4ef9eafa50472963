package interfaces

import (
	"context"
	"os_escolpi/internal/domain/entities"
)

//go:generate mockgen -source=service_order_repository_interface.go -destination=mocks/mock_service_order_repository.go -package=mocks

// IServiceOrderRepository is the remote store adapter seam. The sync engine
// and the usecases talk only to this operation set; the concrete transport
// (DynamoDB here) is substitutable.
//
// Contract:
//   - Add assigns the id and the creation timestamp store-side and returns
//     the stored document.
//   - Update rewrites the full field set except status and created_at.
//   - List returns the complete collection ordered by created_at descending.
//   - Failures follow the storeerr taxonomy: *storeerr.PermissionError,
//     storeerr.ErrNotFound, or *storeerr.TransientError.

type IServiceOrderRepository interface {
	Add(ctx context.Context, order entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	Update(ctx context.Context, id string, order entities.ServiceOrder) error
	UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]entities.ServiceOrder, error)

	// Path identifies the collection scope for error reporting, e.g.
	// "service_orders/public".
	Path() string
}
