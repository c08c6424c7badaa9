package dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/platform/auth"
	"github.com/careport/careport/internal/platform/cache"
)

// Staff and doctor views tolerate slightly stale data; the patient view is
// always fresh since it is the patient's own record.
const viewTTL = 15 * time.Second

type Handler struct {
	svc   *Service
	views *cache.Cache
}

func NewHandler(svc *Service, views *cache.Cache) *Handler {
	return &Handler{svc: svc, views: views}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := auth.RequireRole(string(person.RoleLabTechnician), string(person.RolePharmacist))

	api.GET("/dashboard/patient", h.PatientDashboard, auth.RequireRole(string(person.RolePatient)))
	api.GET("/dashboard/doctor", h.DoctorDashboard, auth.RequireRole(string(person.RoleDoctor)))
	api.GET("/dashboard/staff", h.StaffDashboard, staff)
	api.GET("/patients/:id/summary", h.PatientSummary, staff)
}

func (h *Handler) PatientDashboard(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())
	view, err := h.svc.PatientView(c.Request().Context(), actor, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) DoctorDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	actor := auth.PrincipalFromContext(ctx)

	key := "dashboard:doctor:" + actor.ID.String()
	var cached DoctorDashboard
	if h.views.Get(ctx, key, &cached) {
		return c.JSON(http.StatusOK, &cached)
	}

	view, err := h.svc.DoctorView(ctx, actor, time.Now())
	if err != nil {
		if IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.views.Set(ctx, key, view, viewTTL)
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) StaffDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	actor := auth.PrincipalFromContext(ctx)

	key := "dashboard:staff:" + actor.ID.String()
	var cached StaffDashboard
	if h.views.Get(ctx, key, &cached) {
		return c.JSON(http.StatusOK, &cached)
	}

	view, err := h.svc.StaffView(ctx, actor, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.views.Set(ctx, key, view, viewTTL)
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) PatientSummary(c echo.Context) error {
	summary, err := h.svc.PatientSummaryFor(c.Request().Context(), c.Param("id"))
	if err != nil {
		if IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
