package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// StaffHandler manages the locally-credentialed operator accounts behind the
// admin dashboard. Customer auth lives in AuthHandler and is delegated to
// the remote backend.
type StaffHandler struct {
	staff ports.StaffService
}

func NewStaffHandler(staff ports.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

type staffRegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin support"`
}

type staffLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type staffAuthResponse struct {
	Token string               `json:"token,omitempty"`
	Staff *domain.StaffAccount `json:"staff,omitempty"`
}

// Register creates a new staff account.
//
// @Summary      Register a staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body      staffRegisterRequest  true  "Staff account details"
// @Success      201   {object}  staffAuthResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/staff/register [post]
func (h *StaffHandler) Register(c echo.Context) error {
	var req staffRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.staff.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, staffAuthResponse{Staff: account})
}

// Login authenticates a staff account and returns a JWT.
//
// @Summary      Staff login
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body      staffLoginRequest  true  "Staff credentials"
// @Success      200   {object}  staffAuthResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/staff/login [post]
func (h *StaffHandler) Login(c echo.Context) error {
	var req staffLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, account, err := h.staff.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	return c.JSON(http.StatusOK, staffAuthResponse{Token: token, Staff: account})
}
