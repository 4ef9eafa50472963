package usecase

import (
	"context"
	"log"
	"sync"

	"os_escolpi/internal/domain/entities"
)

// EditCoordinator binds at most one order to the edit form and decides
// create-versus-update on submit. It holds a deep copy of the edit target,
// never a live reference into the list snapshot.
type EditCoordinator struct {
	uc IServiceOrderUseCase

	mu      sync.Mutex
	editing *entities.ServiceOrder
}

// SubmitResult reports what a successful submit did. ID of a created order
// must be registered with the change notifier's suppression marker by the
// caller.
type SubmitResult struct {
	Created bool
	Order   entities.ServiceOrder
}

func NewEditCoordinator(uc IServiceOrderUseCase) *EditCoordinator {
	return &EditCoordinator{uc: uc}
}

// BeginEdit sets the active edit target, replacing any previous one.
func (c *EditCoordinator) BeginEdit(order entities.ServiceOrder) {
	clone := order.Clone()
	c.mu.Lock()
	c.editing = &clone
	c.mu.Unlock()
}

// Editing returns the current edit target, if any.
func (c *EditCoordinator) Editing() (entities.ServiceOrder, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return entities.ServiceOrder{}, false
	}
	return c.editing.Clone(), true
}

// FormValues prefills the form from the edit target, or returns create-mode
// defaults.
func (c *EditCoordinator) FormValues() entities.ServiceOrderForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return entities.ServiceOrderForm{
			PedidoAgora:      entities.Nao,
			Mobile:           entities.Nao,
			IfoodIntegration: entities.Nao,
		}
	}
	return c.editing.FormValues()
}

// CancelEdit discards unsaved changes and returns to create mode.
func (c *EditCoordinator) CancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// Submit validates and writes. With no active target it creates (status
// forced to Pendente by the usecase); with a target it updates the full
// field set, leaving status alone. The target is cleared only on success:
// validation errors keep the form as-is, and a submit against a
// since-deleted order fails cleanly with the target still bound.
func (c *EditCoordinator) Submit(ctx context.Context, form entities.ServiceOrderForm) (SubmitResult, error) {
	c.mu.Lock()
	target := c.editing
	c.mu.Unlock()

	if target == nil {
		created, err := c.uc.Create(ctx, form)
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Created: true, Order: created}, nil
	}

	updated, err := c.uc.Update(ctx, target.ID, form)
	if err != nil {
		return SubmitResult{}, err
	}

	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
	return SubmitResult{Order: updated}, nil
}

// Reconcile checks the edit target against an incoming snapshot. When the
// target disappeared remotely the form intentionally stays open with its
// unsaved values; the submit path then reports the missing order. A log line
// is the only signal.
func (c *EditCoordinator) Reconcile(orders []entities.ServiceOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return
	}
	for _, o := range orders {
		if o.ID == c.editing.ID {
			return
		}
	}
	log.Printf("[coordinator] ordem em edição sumiu do snapshot id=%s, formulário segue aberto", c.editing.ID)
}
