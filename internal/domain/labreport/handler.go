package labreport

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	lab := auth.RequireRole(string(person.RoleLabTechnician))

	api.POST("/lab-reports", h.UploadReport, lab)
	api.POST("/lab-reports/manual", h.ManualReport, lab)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, request.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, request.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *Handler) UploadReport(c echo.Context) error {
	var in RecordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	rep, err := h.svc.Record(c.Request().Context(), actor, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) ManualReport(c echo.Context) error {
	var in ManualIssueInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := auth.PrincipalFromContext(c.Request().Context())
	rep, err := h.svc.ManualIssue(c.Request().Context(), actor, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, rep)
}
