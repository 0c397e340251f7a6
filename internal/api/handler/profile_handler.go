package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/ports"
)

// ProfileHandler proxies the signed-in customer's remote profile row.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone" validate:"omitempty,npmobile"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
}

// Get handles GET /v1/profile. Requires a signed-in session.
//
// @Summary      Get the customer profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context(), ctxSessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PATCH /v1/profile. Only the fields present in the body are
// written; omitted fields keep their remote values.
//
// @Summary      Update the customer profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := map[string]string{}
	if req.FullName != nil {
		patch["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.City != nil {
		patch["city"] = *req.City
	}

	profile, err := h.profiles.Update(c.Request().Context(), ctxSessionID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
