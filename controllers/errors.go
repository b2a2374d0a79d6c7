package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luislong0/daily-diet-api/services"
	"github.com/luislong0/daily-diet-api/utils"
)

var errBadRequest = errors.New("bad request")

// ErrorMapper turns service errors into HTTP responses. With Legacy set,
// not-found and conflict are both answered with 401.
type ErrorMapper struct {
	Legacy bool
}

func (m ErrorMapper) status(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return m.legacy(http.StatusNotFound), "User not found!"
	case errors.Is(err, services.ErrMealNotFound):
		return m.legacy(http.StatusNotFound), "Meal not found!"
	case errors.Is(err, services.ErrUserNameTaken):
		return m.legacy(http.StatusConflict), "User already exists!"
	case errors.Is(err, services.ErrInvalidDateTime), errors.Is(err, services.ErrInvalidPhoto),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (m ErrorMapper) legacy(code int) int {
	if m.Legacy {
		return http.StatusUnauthorized
	}
	return code
}

func (m ErrorMapper) respondError(c *gin.Context, err error) {
	code, msg := m.status(err)
	if code == http.StatusInternalServerError {
		utils.LoggerFromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(code, gin.H{"message": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msg})
}
