package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/services"
)

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// SaveProfileRequest represents the full profile payload
type SaveProfileRequest struct {
	Name     string `json:"name" binding:"max=100"`
	FullName string `json:"fullName" binding:"max=200"`
	Gender   string `json:"gender" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	FullName *string `json:"fullName" binding:"omitempty,max=200"`
	Gender   *string `json:"gender" binding:"omitempty,max=30"`
	Email    *string `json:"email" binding:"omitempty,max=255"`
}

// GetProfile returns the user's profile
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserProfile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(phone)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SaveProfile creates or replaces the user's profile
// @Summary     Save profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SaveProfileRequest true "Profile"
// @Success     200 {object} models.UserProfile "Saved profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.SaveProfile(phone, services.ProfileInput{
		Name:     req.Name,
		FullName: req.FullName,
		Gender:   req.Gender,
		Email:    req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "SAVE_PROFILE", "profile", phone, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile merges the given fields into the profile
// @Summary     Update profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Fields to change"
// @Success     200 {object} models.UserProfile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	phone, err := getPhone(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpdateProfile(phone, models.ProfilePatch{
		Name:     req.Name,
		FullName: req.FullName,
		Gender:   req.Gender,
		Email:    req.Email,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(phone, "UPDATE_PROFILE", "profile", phone, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
