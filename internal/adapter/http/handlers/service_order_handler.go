package handlers

import (
	"errors"
	"net/http"

	request "os_escolpi/internal/adapter/http/dto/request"
	response "os_escolpi/internal/adapter/http/dto/response"
	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/domain/storeerr"
	"os_escolpi/internal/realtime"
	"os_escolpi/internal/usecase"
	"os_escolpi/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidServiceOrderPayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_ORDER_INPUT", "Invalid service order payload", http.StatusBadRequest)
)

// SessionHeader correlates a write with the SSE session that issued it, so
// the session's own notifier can suppress the echo notification.
const SessionHeader = "X-Client-Session"

// ServiceOrderHandler handles HTTP requests for service orders. Each submit
// request runs through an EditCoordinator so create-versus-update follows
// the same path the form does.
type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
	hub     *realtime.Hub
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase, hub *realtime.Hub) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc, hub: hub}
}

// CreateServiceOrder godoc
// @Summary  Create a service order
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    order body request.ServiceOrderRequest true "Service order fields"
// @Success  201 {object} response.ServiceOrderResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /service-orders [post]
func (h *ServiceOrderHandler) CreateServiceOrder(c *gin.Context) {
	var payload request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceOrderPayload.HTTPStatus, errInvalidServiceOrderPayload.ToHTTPError())
		return
	}

	coordinator := usecase.NewEditCoordinator(h.usecase)
	res, err := coordinator.Submit(c.Request.Context(), payload.ToForm())
	if err != nil {
		h.renderError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.MarkCreated(c.GetHeader(SessionHeader), res.Order.ID)
	}

	c.JSON(http.StatusCreated, response.FromServiceOrder(res.Order))
}

// UpdateServiceOrder godoc
// @Summary  Edit a service order (full field set; status untouched)
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    id    path string                      true "Order id"
// @Param    order body request.ServiceOrderRequest true "Service order fields"
// @Success  200 {object} response.ServiceOrderResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /service-orders/{id} [put]
func (h *ServiceOrderHandler) UpdateServiceOrder(c *gin.Context) {
	var payload request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceOrderPayload.HTTPStatus, errInvalidServiceOrderPayload.ToHTTPError())
		return
	}

	existing, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	coordinator := usecase.NewEditCoordinator(h.usecase)
	coordinator.BeginEdit(existing)

	res, err := coordinator.Submit(c.Request.Context(), payload.ToForm())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromServiceOrder(res.Order))
}

// UpdateServiceOrderStatus godoc
// @Summary  Narrow status transition
// @Tags     service-orders
// @Accept   json
// @Produce  json
// @Param    id     path string                true "Order id"
// @Param    status body request.StatusRequest true "New status"
// @Success  200 {object} map[string]string
// @Failure  400 {object} pkg.HTTPError
// @Router   /service-orders/{id}/status [patch]
func (h *ServiceOrderHandler) UpdateServiceOrderStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceOrderPayload.HTTPStatus, errInvalidServiceOrderPayload.ToHTTPError())
		return
	}

	id := c.Param("id")
	status := entities.ServiceOrderStatus(payload.Status)
	if err := h.usecase.UpdateStatus(c.Request.Context(), id, status); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": payload.Status})
}

// DeleteServiceOrder godoc
// @Summary  Delete a service order (terminal, idempotent)
// @Tags     service-orders
// @Param    id path string true "Order id"
// @Success  204
// @Router   /service-orders/{id} [delete]
func (h *ServiceOrderHandler) DeleteServiceOrder(c *gin.Context) {
	if err := h.usecase.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListServiceOrders godoc
// @Summary  List service orders, newest first
// @Tags     service-orders
// @Produce  json
// @Success  200 {array} response.ServiceOrderResponse
// @Router   /service-orders [get]
func (h *ServiceOrderHandler) ListServiceOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

func (h *ServiceOrderHandler) renderError(c *gin.Context, err error) {
	var verrs usecase.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Validation failed", http.StatusBadRequest).ToHTTPError(),
			"fields": verrs,
		})
		return
	}

	appErr := mapServiceOrderError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapServiceOrderError(err error) *pkg.AppError {
	if perr, ok := storeerr.AsPermission(err); ok {
		// The permission bus already carried the details to listeners; the
		// direct response stays terse.
		return pkg.NewDomainError("PERMISSION_DENIED", perr.Error(), err, http.StatusForbidden)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidServiceOrderID), errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
