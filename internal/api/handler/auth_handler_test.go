package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pizzadelivery/pizza-api/internal/core/domain"
	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, error)
	logoutFn   func(ctx context.Context, refreshToken string, all bool) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string, all bool) error {
	return s.logoutFn(ctx, refreshToken, all)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Hello(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/", nil), rec)

	if err := NewAuthHandler(&stubAuthService{}).Hello(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Hello World") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" || in.Password != "s3cret" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.IsStaff != nil || in.IsActive != nil {
				t.Fatalf("omitted flags must stay nil")
			}
			return &domain.User{ID: 1, Username: in.Username, Email: in.Email, PasswordHash: "hash", IsActive: true}, nil
		},
	}

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"s3cret"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAuthHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["is_active"] != true || resp["is_staff"] != false {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_PassesRoleFlags(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.IsStaff == nil || !*in.IsStaff {
				t.Fatalf("expected is_staff=true")
			}
			return &domain.User{ID: 2, Username: in.Username, IsStaff: true}, nil
		},
	}

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"username":"root","email":"root@example.com","password":"pw","is_staff":true}`)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := NewAuthHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthHandler_Signup_Invalid(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	cases := map[string]string{
		"missing email": `{"username":"alice","password":"pw"}`,
		"bad email":     `{"username":"alice","email":"nope","password":"pw"}`,
		"malformed":     `{"username":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), httptest.NewRecorder())
			err := NewAuthHandler(stub).Signup(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		},
	}

	req := jsonRequest(http.MethodPost, "/auth/signup", `{"username":"alice","email":"a2@example.com","password":"pw"}`)
	c := e.NewContext(req, httptest.NewRecorder())

	err := NewAuthHandler(stub).Signup(c)
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.TokenPair, error) {
			if username == "alice" && password == "s3cret" {
				return &domain.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
			}
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret"}`), rec)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var pair domain.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if pair.AccessToken != "a" || pair.RefreshToken != "r" {
		t.Fatalf("unexpected tokens: %+v", pair)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`), httptest.NewRecorder())
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string) (string, error) {
			if token != "refresh-token" {
				return "", domain.ErrTokenKind
			}
			return "new-access", nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer refresh-token")
	rec := httptest.NewRecorder()
	if err := h.Refresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "new-access" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, ok := resp["refresh_token"]; ok {
		t.Fatalf("refresh must not return a refresh token")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer access-token")
	if err := h.Refresh(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrTokenKind) {
		t.Fatalf("expected ErrTokenKind, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/refresh", nil)
	if err := h.Refresh(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	var gotAll bool
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, token string, all bool) error {
			gotAll = all
			return nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout?all=true", nil)
	req.Header.Set("Authorization", "Bearer refresh-token")
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !gotAll {
		t.Fatalf("expected all=true to reach the service")
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/logout?all=maybe", nil)
	req.Header.Set("Authorization", "Bearer refresh-token")
	if err := h.Logout(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
