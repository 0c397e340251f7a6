package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/ports"
)

// SnapshotHandler exposes the form persistence surface. The snapshot belongs
// to the anonymous client id, not the signed-in user, so a buyer keeps their
// draft across sign-in and sign-out.
type SnapshotHandler struct {
	snapshots ports.SnapshotService
}

func NewSnapshotHandler(snapshots ports.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

type persistFormRequest struct {
	Fields map[string]string `json:"fields"`
}

type restoreFormResponse struct {
	Fields map[string]string `json:"fields"`
}

// Persist handles PUT /v1/form. The body replaces the whole snapshot; there
// are no per-field writes.
//
// @Summary      Save the form draft
// @Tags         form
// @Accept       json
// @Produce      json
// @Param        body  body      persistFormRequest  true  "Full current field set"
// @Success      204   "Saved"
// @Failure      400   {object}  errorResponse
// @Router       /v1/form [put]
func (h *SnapshotHandler) Persist(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req persistFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Fields == nil {
		req.Fields = map[string]string{}
	}

	if err := h.snapshots.Persist(c.Request().Context(), clientID, req.Fields); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore handles GET /v1/form. A client with no saved draft gets an empty
// field set, never an error.
//
// @Summary      Restore the form draft
// @Tags         form
// @Produce      json
// @Success      200  {object}  restoreFormResponse
// @Router       /v1/form [get]
func (h *SnapshotHandler) Restore(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	fields, err := h.snapshots.Restore(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restoreFormResponse{Fields: fields})
}

// Clear handles DELETE /v1/form.
//
// @Summary      Discard the form draft
// @Tags         form
// @Success      204  "Cleared"
// @Router       /v1/form [delete]
func (h *SnapshotHandler) Clear(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	if err := h.snapshots.Clear(c.Request().Context(), clientID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
