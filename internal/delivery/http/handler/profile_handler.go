package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateBasicProfile handles POST /profile/basic
// @Summary Create basic profile
// @Description Short onboarding step captured right after sign-up
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateBasicProfileRequest true "Basic profile"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile/basic [post]
func (h *ProfileHandler) CreateBasicProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req profile.CreateBasicProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindError(err),
		})
		return
	}

	created, err := h.profileUseCase.CreateBasicProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "profile already exists",
			})
			return
		}
		internalError(c, err, "failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, ProfileResponse{
		Message: "basic profile created",
		Profile: created,
	})
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
			return
		}
		internalError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// RegisterFullProfile handles PUT /profile/full
// @Summary Register full profile
// @Description Long registration form; creates or replaces the profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.RegisterFullProfileRequest true "Full profile"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Router /profile/full [put]
func (h *ProfileHandler) RegisterFullProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req profile.RegisterFullProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindError(err),
		})
		return
	}

	p, err := h.profileUseCase.RegisterFullProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if status, message, handled := profileWriteError(err); handled {
			c.JSON(status, ErrorResponse{Error: message})
			return
		}
		internalError(c, err, "failed to register profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "full profile registered successfully",
		Profile: p,
	})
}

// UpdateMyProfile handles PATCH /profile/me
// @Summary Update my profile
// @Description Partial update; only known profile fields are accepted
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [patch]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	p, err := h.profileUseCase.UpdateMyProfile(c.Request.Context(), userID, raw)
	if err != nil {
		if status, message, handled := profileWriteError(err); handled {
			c.JSON(status, ErrorResponse{Error: message})
			return
		}
		internalError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "profile updated",
		Profile: p,
	})
}

func profileWriteError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found", true
	case errors.Is(err, domain.ErrEmptyProfilePatch):
		return http.StatusBadRequest, "no fields to update", true
	case errors.Is(err, domain.ErrUnknownProfileField),
		errors.Is(err, domain.ErrImmutableProfileField),
		errors.Is(err, domain.ErrInvalidFieldValue),
		errors.Is(err, domain.ErrInvalidPreferenceRange):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}
