package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medclaims/medclaims/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	return h, echo.New()
}

func TestHandler_Register(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Asha","email":"asha@example.com","password":"long enough pw","role":"patient"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var sess Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a token in the response")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password fields")
	}
}

func TestHandler_RegisterInvalidRole(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Asha","email":"asha@example.com","password":"long enough pw","role":"root"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestHandler_Login(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Register(nil, RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "long enough pw", Role: "insurer",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	body := `{"email":"asha@example.com","password":"long enough pw"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_LoginWrongPassword(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Register(nil, RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "long enough pw", Role: "patient",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	body := `{"email":"asha@example.com","password":"nope nope nope"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestHandler_Me(t *testing.T) {
	h, e := newTestHandler()
	sess, err := h.svc.Register(nil, RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "long enough pw", Role: "patient",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: sess.User.ID, Role: auth.RolePatient})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != sess.User.ID {
		t.Errorf("id = %s, want %s", got.ID, sess.User.ID)
	}
}

func TestHandler_MeUnauthenticated(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 HTTPError, got %v", err)
	}
}

func TestHandler_MeUnknownUser(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: uuid.New(), Role: auth.RolePatient})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err == nil {
		t.Error("expected error for unknown user")
	}
}
