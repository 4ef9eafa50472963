package handlers

import (
	"errors"
	"io"
	"net/http"

	response "os_escolpi/internal/adapter/http/dto/response"
	"os_escolpi/internal/errbus"
	"os_escolpi/internal/realtime"
	"os_escolpi/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StreamHandler serves the realtime view over SSE. Each connection is one
// session: full list snapshots, that session's change notifications, and the
// process-wide permission errors.
type StreamHandler struct {
	hub *realtime.Hub
	bus *errbus.Bus
}

func NewStreamHandler(hub *realtime.Hub, bus *errbus.Bus) *StreamHandler {
	return &StreamHandler{hub: hub, bus: bus}
}

// StreamServiceOrders godoc
// @Summary  Live service order stream (SSE)
// @Description Emits "snapshot", "notification" and "permission_error" events.
// @Tags     service-orders
// @Produce  text/event-stream
// @Param    X-Client-Session header string false "Session id correlating this stream with writes"
// @Success  200
// @Failure  503 {object} pkg.HTTPError
// @Router   /service-orders/stream [get]
func (h *StreamHandler) StreamServiceOrders(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = c.Query("session")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx := c.Request.Context()

	session, err := h.hub.Open(ctx, sessionID)
	if err != nil {
		if errors.Is(err, realtime.ErrIdentityNotReady) {
			appErr := pkg.NewDomainErrorSimple("IDENTITY_NOT_READY", "Identity not resolved yet, retry shortly", http.StatusServiceUnavailable)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		if errors.Is(err, realtime.ErrSessionExists) {
			appErr := pkg.NewDomainErrorSimple("SESSION_IN_USE", "Session already streaming", http.StatusConflict)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Failed to open stream", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer h.hub.Close(sessionID)

	permErrors, busID := h.bus.Subscribe(ctx)
	defer h.bus.Unsubscribe(busID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, ok := <-session.Snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", response.FromSnapshot(snap))
			return true
		case n, ok := <-session.Notifications:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case perr, ok := <-permErrors:
			if !ok {
				return false
			}
			c.SSEvent("permission_error", gin.H{
				"operation": string(perr.Operation),
				"path":      perr.Path,
				"resource":  perr.Resource,
			})
			return true
		}
	})
}
