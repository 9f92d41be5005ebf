package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/config"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/middleware"
	"pocketledger/internal/models"
	"pocketledger/internal/services"
)

// --- mock auth service ---

type mockAuthService struct {
	startSessionFn func(phone string) (*models.AuthSession, error)
	currentFn      func() (*models.AuthSession, error)
	setPINFn       func(phone, pin string) error
	verifyPINFn    func(phone, pin string) error
	resetUserFn    func(phone string) error
	onboarded      bool
	ended          bool
}

func (m *mockAuthService) StartSession(phone string) (*models.AuthSession, error) {
	if m.startSessionFn != nil {
		return m.startSessionFn(phone)
	}
	return &models.AuthSession{Phone: phone, Timestamp: time.Now()}, nil
}

func (m *mockAuthService) EndSession() error {
	m.ended = true
	return nil
}

func (m *mockAuthService) CurrentSession() (*models.AuthSession, error) {
	if m.currentFn != nil {
		return m.currentFn()
	}
	return nil, apperrors.ErrUnauthorized
}

func (m *mockAuthService) SetPIN(phone, pin string) error {
	if m.setPINFn != nil {
		return m.setPINFn(phone, pin)
	}
	return nil
}

func (m *mockAuthService) VerifyPIN(phone, pin string) error {
	if m.verifyPINFn != nil {
		return m.verifyPINFn(phone, pin)
	}
	return nil
}

func (m *mockAuthService) HasPIN(string) (bool, error) { return false, nil }
func (m *mockAuthService) RemovePIN(string) error       { return nil }
func (m *mockAuthService) IsOnboarded() (bool, error)   { return m.onboarded, nil }

func (m *mockAuthService) CompleteOnboarding() error {
	m.onboarded = true
	return nil
}

func (m *mockAuthService) ResetUser(phone string) error {
	if m.resetUserFn != nil {
		return m.resetUserFn(phone)
	}
	return nil
}

var _ services.AuthServicer = (*mockAuthService)(nil)

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/session", handler.StartSession)
	r.GET("/auth/session", handler.GetSession)
	r.DELETE("/auth/session", handler.EndSession)
	auth := r.Group("", injectPhone(testPhone))
	auth.PUT("/pin", handler.SetPIN)
	auth.DELETE("/pin", handler.RemovePIN)
	auth.POST("/pin/verify", handler.VerifyPIN)
	auth.GET("/onboarding", handler.GetOnboarding)
	auth.POST("/onboarding", handler.CompleteOnboarding)
	auth.DELETE("/account/data", handler.DeleteAccountData)
	return r
}

func TestAuthHandler_StartSession(t *testing.T) {
	config.Set(&config.Config{JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})

	t.Run("returns 201 with a usable token", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/session", `{"phone":"+91 12345 67890"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		claims, err := middleware.ParseSessionToken(result["token"].(string))
		if err != nil {
			t.Fatalf("expected a valid token: %v", err)
		}
		if claims.Phone != "+91 12345 67890" {
			t.Errorf("expected token for the phone, got %s", claims.Phone)
		}
	})

	t.Run("returns 400 on invalid phone", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/session", `{"phone":"abc"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestAuthHandler_Session(t *testing.T) {
	t.Run("returns 401 without a session", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/auth/session", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns current session", func(t *testing.T) {
		svc := &mockAuthService{currentFn: func() (*models.AuthSession, error) {
			return &models.AuthSession{Phone: testPhone}, nil
		}}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/auth/session", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		session := parseJSON(t, rec)["session"].(map[string]interface{})
		if session["phone"] != testPhone {
			t.Errorf("expected %s, got %v", testPhone, session["phone"])
		}
	})

	t.Run("logout ends the session", func(t *testing.T) {
		svc := &mockAuthService{}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/auth/session", "")

		if rec.Code != http.StatusOK || !svc.ended {
			t.Fatalf("expected session to end, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_PIN(t *testing.T) {
	t.Run("set returns 200", func(t *testing.T) {
		var gotPIN string
		svc := &mockAuthService{setPINFn: func(_, pin string) error {
			gotPIN = pin
			return nil
		}}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/pin", `{"pin":"1234"}`)

		if rec.Code != http.StatusOK || gotPIN != "1234" {
			t.Fatalf("expected PIN to be set, got %d %q", rec.Code, gotPIN)
		}
	})

	t.Run("set returns 400 on bad PIN", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/pin", `{"pin":"12"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("verify maps errors", func(t *testing.T) {
		svc := &mockAuthService{verifyPINFn: func(_, _ string) error { return apperrors.ErrInvalidPIN }}
		r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/pin/verify", `{"pin":"9999"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PIN")
	})

	t.Run("remove returns 200", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/pin", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Onboarding(t *testing.T) {
	svc := &mockAuthService{}
	r := setupAuthRouter(NewAuthHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/onboarding", "")
	if parseJSON(t, rec)["completed"] != false {
		t.Fatalf("expected onboarding incomplete, got %s", rec.Body.String())
	}

	rec = doRequest(r, "POST", "/onboarding", "")
	if rec.Code != http.StatusOK || !svc.onboarded {
		t.Fatalf("expected onboarding to complete, got %d", rec.Code)
	}

	rec = doRequest(r, "GET", "/onboarding", "")
	if parseJSON(t, rec)["completed"] != true {
		t.Errorf("expected onboarding complete, got %s", rec.Body.String())
	}
}

func TestAuthHandler_DeleteAccountData(t *testing.T) {
	var reset string
	audit := &mockAuditService{}
	svc := &mockAuthService{resetUserFn: func(phone string) error {
		reset = phone
		return nil
	}}
	r := setupAuthRouter(NewAuthHandler(svc, audit))

	rec := doRequest(r, "DELETE", "/account/data", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reset != testPhone {
		t.Errorf("expected data of %s to be reset, got %q", testPhone, reset)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "DELETE_ACCOUNT_DATA" {
		t.Errorf("unexpected audit %v", audit.actions)
	}
}
