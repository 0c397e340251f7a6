package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// NotificationHandler exposes the client's live toast queue.
type NotificationHandler struct {
	notifier ports.Notifier
}

func NewNotificationHandler(notifier ports.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

type toastListResponse struct {
	Data []domain.Toast `json:"data"`
}

// List handles GET /v1/notifications. Toasts appear in enqueue order and
// drop out on their own timers or on explicit dismissal.
//
// @Summary      List active notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  toastListResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toastListResponse{Data: h.notifier.Active(clientID)})
}

// Dismiss handles DELETE /v1/notifications/:id. Dismissing a toast that
// already expired is a no-op, not an error.
//
// @Summary      Dismiss a notification
// @Tags         notifications
// @Param        id  path  string  true  "Toast id"
// @Success      204  "Dismissed"
// @Router       /v1/notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	h.notifier.Dismiss(clientID, c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
