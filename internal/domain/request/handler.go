package request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(string(person.RoleLabTechnician), string(person.RolePharmacist))

	api.POST("/requests", h.CreateRequest, auth.RequireRole(string(person.RoleDoctor)))
	api.PUT("/requests/:id/accept", h.AcceptRequest, staff)
	api.POST("/requests/:id/complete", h.CompleteRequest, staff)
}

// mapError translates workflow sentinel errors to HTTP failures.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "request or patient not found")
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidTarget):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) CreateRequest(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	req, err := h.svc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, req)
}

func (h *Handler) AcceptRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	req, err := h.svc.Accept(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, req)
}

func (h *Handler) CompleteRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	req, err := h.svc.Complete(c.Request().Context(), actor, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, req)
}
