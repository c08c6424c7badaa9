package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/platform/auth"
)

func newTestContext(e *echo.Echo, method, body string, p auth.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_CreateRequest(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	body := `{"patient_id":"PAT-100000","target_role":"pharmacist","kind":"Medicine","details":"refill"}`
	c, rec := newTestContext(e, http.MethodPost, body, principal(f.doctor))

	if err := h.CreateRequest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateRequest_UnknownPatient(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	body := `{"patient_id":"PAT-777777","target_role":"pharmacist","kind":"Medicine"}`
	c, _ := newTestContext(e, http.MethodPost, body, principal(f.doctor))

	err := h.CreateRequest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_AcceptRequest_RoleMismatch(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	req, _ := f.svc.Create(context.Background(), principal(f.doctor), CreateInput{
		PatientID: "PAT-100000", TargetRole: person.RolePharmacist, Kind: KindMedicine,
	})

	c, _ := newTestContext(e, http.MethodPut, "", principal(f.lab))
	c.SetParamNames("id")
	c.SetParamValues(req.ID.String())

	err := h.AcceptRequest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestHandler_AcceptRequest_InvalidID(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	c, _ := newTestContext(e, http.MethodPut, "", principal(f.pharmacist))
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.AcceptRequest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_CompleteRequest_Terminal(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	req, _ := f.svc.Create(context.Background(), principal(f.doctor), CreateInput{
		PatientID: "PAT-100000", TargetRole: person.RolePharmacist, Kind: KindMedicine,
	})
	if _, err := f.svc.Complete(context.Background(), principal(f.pharmacist), req.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	c, _ := newTestContext(e, http.MethodPost, "", principal(f.pharmacist))
	c.SetParamNames("id")
	c.SetParamValues(req.ID.String())

	err := h.CompleteRequest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_AcceptRequest_NotFound(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)
	e := echo.New()

	c, _ := newTestContext(e, http.MethodPut, "", principal(f.pharmacist))
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.AcceptRequest(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
