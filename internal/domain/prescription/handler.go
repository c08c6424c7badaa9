package prescription

import (
	"errors"
	"net/http"

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
	api.POST("/prescriptions", h.CreatePrescription, auth.RequireRole(string(person.RoleDoctor)))
	api.POST("/pharmacy/manual-issue", h.ManualIssue, auth.RequireRole(string(person.RolePharmacist)))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var in RecordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	p, err := h.svc.Record(c.Request().Context(), actor, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ManualIssue(c echo.Context) error {
	var in ManualIssueInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	req, err := h.svc.ManualIssue(c.Request().Context(), actor, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, req)
}
