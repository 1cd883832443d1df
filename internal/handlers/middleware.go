package handlers

import (
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/msgs"
	"mgMessenger/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := utils.TokenFromRequest(ctx)
		if jwtToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		user, err := rh.authService.Authenticate(jwtToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}

		utils.SetLoginInContext(ctx, user.Login)
		ctx.Set(contextUser, user)
		ctx.Next()
	}
}
