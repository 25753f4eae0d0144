package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// SignupResponse is returned once an OTP has been issued
type SignupResponse struct {
	Message string `json:"message"`
	*auth.RegisterResponse
}

// Signup handles POST /auth/signup
// @Summary Sign up
// @Description Register with email or phone and send a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Signup payload"
// @Success 201 {object} SignupResponse
// @Success 200 {object} SignupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindError(err),
		})
		return
	}

	result, err := h.authUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists, please login"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid identifier type"})
		default:
			internalError(c, err, "registration failed")
		}
		return
	}

	status := http.StatusCreated
	message := "OTP sent, please verify to continue"
	if !result.IsNew {
		status = http.StatusOK
		message = "account pending verification, a new OTP has been sent"
	}

	c.JSON(status, SignupResponse{Message: message, RegisterResponse: result})
}

// VerifyOTP handles POST /auth/verify-otp
// @Summary Verify OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.VerifyOTPRequest true "OTP payload"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindError(err),
		})
		return
	}

	result, err := h.authUseCase.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid or expired OTP"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid identifier type"})
		default:
			internalError(c, err, "verification failed")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Login handles POST /auth/login
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: bindError(err),
		})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		case errors.Is(err, domain.ErrUserNotVerified):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "account not verified, please verify your OTP"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid identifier type"})
		default:
			internalError(c, err, "login failed")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me handles GET /auth/me
// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	user, err := h.authUseCase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		internalError(c, err, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}
