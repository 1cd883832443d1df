package handlers

import (
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/msgs"
	"mgMessenger/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextUser = "user"

func abortWithErrors(ctx *gin.Context, status int, errors []error) {
	ctx.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  errors,
	})
}

// abortWithServiceErrors picks the status from the first error a service
// returned.
func abortWithServiceErrors(ctx *gin.Context, errors []error) {
	status := http.StatusBadRequest
	switch first := errors[0]; {
	case services.IsNotFound(first):
		status = http.StatusNotFound
	case services.IsForbidden(first):
		status = http.StatusForbidden
	case first == errs.ErrWrongCredentials:
		status = http.StatusUnauthorized
	}
	abortWithErrors(ctx, status, errors)
}

func respondSuccess(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// currentUser is only valid behind MustAuthenticateMiddleware.
func currentUser(ctx *gin.Context) *models.User {
	return ctx.MustGet(contextUser).(*models.User)
}
