package usecase

import (
	"context"
	"errors"
	"strings"

	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/domain/storeerr"
	"os_escolpi/internal/errbus"
	"os_escolpi/internal/usecase/interfaces"
)

var (
	ErrServiceOrderNotFound  = errors.New("service order not found")
	ErrInvalidServiceOrderID = errors.New("invalid service order id")
	ErrInvalidStatus         = errors.New("invalid status")
)

// IServiceOrderUseCase exposes the service order operations.
//
//   - Create: submit with no active edit; status forced to Pendente.
//   - Update: full-field edit submit; status untouched.
//   - UpdateStatus: narrow status transition, idempotent, not-found no-ops.
//   - Remove: terminal deletion, not-found no-ops.

type IServiceOrderUseCase interface {
	Create(ctx context.Context, form entities.ServiceOrderForm) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	Update(ctx context.Context, id string, form entities.ServiceOrderForm) (entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]entities.ServiceOrder, error)
}

type ServiceOrderUseCase struct {
	repo interfaces.IServiceOrderRepository
	bus  *errbus.Bus
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(repo interfaces.IServiceOrderRepository, bus *errbus.Bus) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{repo: repo, bus: bus}
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, form entities.ServiceOrderForm) (entities.ServiceOrder, error) {
	if verrs := ValidateForm(form); verrs != nil {
		return entities.ServiceOrder{}, verrs
	}

	order := form.ToServiceOrder()
	order.Status = entities.ServiceOrderStatusPendente

	created, err := u.repo.Add(ctx, order)
	if err != nil {
		return entities.ServiceOrder{}, u.routeErr(err)
	}
	return created, nil
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}

	order, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if storeerr.IsNotFound(err) {
			return entities.ServiceOrder{}, ErrServiceOrderNotFound
		}
		return entities.ServiceOrder{}, u.routeErr(err)
	}
	return order, nil
}

// Update rewrites the full field set of an existing order. The status and
// creation timestamp are read back from the store and carried over, so an
// edit can never change them.
func (u *ServiceOrderUseCase) Update(ctx context.Context, id string, form entities.ServiceOrderForm) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}
	if verrs := ValidateForm(form); verrs != nil {
		return entities.ServiceOrder{}, verrs
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if storeerr.IsNotFound(err) {
			return entities.ServiceOrder{}, ErrServiceOrderNotFound
		}
		return entities.ServiceOrder{}, u.routeErr(err)
	}

	updated := form.ToServiceOrder()
	updated.ID = id
	updated.Status = existing.Status
	updated.CreatedAt = existing.CreatedAt

	if err := u.repo.Update(ctx, id, updated); err != nil {
		if storeerr.IsNotFound(err) {
			return entities.ServiceOrder{}, ErrServiceOrderNotFound
		}
		return entities.ServiceOrder{}, u.routeErr(err)
	}
	return updated, nil
}

// UpdateStatus is the narrow status transition. Applying the same status
// twice yields the same state and no error; a since-deleted order no-ops.
func (u *ServiceOrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.ServiceOrderStatus) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceOrderID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := u.repo.UpdateStatus(ctx, id, status); err != nil {
		if storeerr.IsNotFound(err) {
			return nil
		}
		return u.routeErr(err)
	}
	return nil
}

func (u *ServiceOrderUseCase) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceOrderID
	}

	if err := u.repo.Remove(ctx, id); err != nil {
		if storeerr.IsNotFound(err) {
			return nil
		}
		return u.routeErr(err)
	}
	return nil
}

func (u *ServiceOrderUseCase) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, u.routeErr(err)
	}
	return orders, nil
}

// routeErr publishes permission errors to the process-wide channel before
// returning them; other failures pass through for the call site to handle.
func (u *ServiceOrderUseCase) routeErr(err error) error {
	if perr, ok := storeerr.AsPermission(err); ok && u.bus != nil {
		u.bus.Publish(perr)
	}
	return err
}
