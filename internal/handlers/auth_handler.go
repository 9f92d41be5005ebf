package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/middleware"
	"pocketledger/internal/models"
	"pocketledger/internal/services"
)

// AuthHandler handles session, PIN, onboarding and account reset requests.
type AuthHandler struct {
	authService  services.AuthServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

// StartSessionRequest represents the login request payload
type StartSessionRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
}

// SessionResponse represents a started session with its bearer token
type SessionResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Session   models.AuthSession `json:"session"`
}

// PINRequest carries a PIN
type PINRequest struct {
	PIN string `json:"pin" binding:"required,pin"`
}

// StartSession logs a phone in and issues a session token
// @Summary     Start a session
// @Description Store the phone as the current session and return a bearer token for it
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body StartSessionRequest true "Phone number"
// @Success     201 {object} SessionResponse "Session started"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/session [post]
func (h *AuthHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.StartSession(req.Phone)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, expiresAt, err := middleware.GenerateSessionToken(session.Phone)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(session.Phone, "LOGIN", "session", "", c.ClientIP(), nil)

	c.JSON(http.StatusCreated, SessionResponse{Token: token, ExpiresAt: expiresAt, Session: *session})
}

// GetSession returns the current session
// @Summary     Get the current session
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.AuthSession "Current session"
// @Failure     401 {object} ErrorResponse "No session"
// @Router      /auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := h.authService.CurrentSession()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// EndSession logs out. Stored user data is kept.
// @Summary     End the session
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/session [delete]
func (h *AuthHandler) EndSession(c *gin.Context) {
	if err := h.authService.EndSession(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// SetPIN sets or replaces the user's PIN
// @Summary     Set the PIN
// @Description Changing an existing PIN requires the current one in the X-PIN header
// @Tags        pin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-PIN   header string     false "Current PIN"
// @Param       request body   PINRequest true  "New PIN"
// @Success     200 {object} MessageResponse "PIN saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /pin [put]
func (h *AuthHandler) SetPIN(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN must be 4 to 6 digits"))
		return
	}

	if err := h.authService.SetPIN(phone, req.PIN); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "SET_PIN", "pin", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "PIN saved"})
}

// VerifyPIN checks a PIN
// @Summary     Verify the PIN
// @Tags        pin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PINRequest true "PIN"
// @Success     200 {object} MessageResponse "PIN accepted"
// @Failure     401 {object} ErrorResponse "Incorrect PIN"
// @Failure     404 {object} ErrorResponse "No PIN set"
// @Router      /pin/verify [post]
func (h *AuthHandler) VerifyPIN(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrInvalidPIN)
		return
	}

	if err := h.authService.VerifyPIN(phone, req.PIN); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "PIN accepted"})
}

// RemovePIN deletes the user's PIN
// @Summary     Remove the PIN
// @Tags        pin
// @Produce     json
// @Security    BearerAuth
// @Param       X-PIN header string true "Current PIN"
// @Success     200 {object} MessageResponse "PIN removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /pin [delete]
func (h *AuthHandler) RemovePIN(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.RemovePIN(phone); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "REMOVE_PIN", "pin", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "PIN removed"})
}

// GetOnboarding reports whether onboarding is complete
// @Summary     Get onboarding state
// @Tags        onboarding
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Onboarding state"
// @Router      /onboarding [get]
func (h *AuthHandler) GetOnboarding(c *gin.Context) {
	done, err := h.authService.IsOnboarded()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": done})
}

// CompleteOnboarding marks onboarding as complete
// @Summary     Complete onboarding
// @Tags        onboarding
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]bool "Onboarding state"
// @Router      /onboarding [post]
func (h *AuthHandler) CompleteOnboarding(c *gin.Context) {
	if err := h.authService.CompleteOnboarding(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true})
}

// DeleteAccountData wipes every record of the user
// @Summary     Delete all user data
// @Description Removes profile, transactions, categories, PIN and downloads of the user. Requires the PIN when one is set.
// @Tags        account
// @Produce     json
// @Security    BearerAuth
// @Param       X-PIN header string false "Current PIN"
// @Success     200 {object} MessageResponse "Data deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /account/data [delete]
func (h *AuthHandler) DeleteAccountData(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.ResetUser(phone); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "DELETE_ACCOUNT_DATA", "account", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Account data deleted"})
}
