package person

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler(repo *mockRepo) (*Handler, *echo.Echo) {
	return NewHandler(NewResolver(repo)), echo.New()
}

func TestValidatePatient_Found(t *testing.T) {
	repo := newMockRepo()
	repo.add(&Person{Role: RolePatient, RoleID: "PAT-700001", LoginID: "pat7", FullName: "Pat Seven"})
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("PAT-700001")

	if err := h.ValidatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestValidatePatient_WrongRoleIsNotFound(t *testing.T) {
	repo := newMockRepo()
	repo.add(&Person{Role: RoleDoctor, RoleID: "DOC-700002", LoginID: "doc7"})
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("DOC-700002")

	err := h.ValidatePatient(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestValidateStaff_NotFound(t *testing.T) {
	repo := newMockRepo()
	h, e := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.ValidateStaff(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
