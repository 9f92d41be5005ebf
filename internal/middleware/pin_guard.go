package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/services"
)

// PINHeader carries the user's PIN on guarded routes.
const PINHeader = "X-PIN"

// PINGuard protects a route with the user's PIN once one is set. Users
// without a PIN pass through. Must run after AuthMiddleware.
func PINGuard(auth services.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.GetString(PhoneKey)
		if phone == "" {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		has, err := auth.HasPIN(phone)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !has {
			c.Next()
			return
		}

		pin := c.GetHeader(PINHeader)
		if pin == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrInvalidPIN, "PIN is required"))
			return
		}
		if err := auth.VerifyPIN(phone, pin); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
