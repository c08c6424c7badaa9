package person

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careport/careport/internal/platform/auth"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/validate/:id", h.ValidatePatient)
	api.GET("/staff/validate/:id", h.ValidateStaff, auth.RequireRole(string(RoleDoctor)))
}

// ValidatePatient confirms a patient identifier before a doctor or staff
// member records anything against it.
func (h *Handler) ValidatePatient(c echo.Context) error {
	p, err := h.resolver.Resolve(c.Request().Context(), c.Param("id"))
	if err != nil || p.Role != RolePatient {
		if err != nil && !errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p.Summarize())
}

// ValidateStaff confirms a lab technician or pharmacist identifier when a
// doctor targets a request at a specific staff member.
func (h *Handler) ValidateStaff(c echo.Context) error {
	p, err := h.resolver.ResolveStaff(c.Request().Context(), c.Param("id"), RoleLabTechnician, RolePharmacist)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, "staff not found or invalid role")
	}
	return c.JSON(http.StatusOK, p.Summarize())
}
