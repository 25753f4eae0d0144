package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gdugdh24/matrimony-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ProfileResponse wraps a profile with a status message
type ProfileResponse struct {
	Message string          `json:"message"`
	Profile *domain.Profile `json:"profile"`
}

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
				return domain.Gender(fl.Field().String()).IsValid()
			})
		}
	})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid field " + fe.Field() + ": failed '" + fe.Tag() + "' validation"
	}
	return "invalid request body"
}

func abortUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error: "unauthorized",
	})
}

func internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	middleware.LoggerFrom(c).Error(message,
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: message,
	})
}
