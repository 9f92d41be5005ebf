package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pocketledger/internal/config"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/localstore"
	"pocketledger/internal/services"
)

// PhoneKey is the Gin context key holding the authenticated phone.
const PhoneKey = "phone"

const issuer = "pocketledger-api"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// SessionClaims represents the claims in a session token
type SessionClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for phone and returns it with
// its expiry.
func GenerateSessionToken(phone string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(config.Get().JWTExpirationDur)

	claims := &SessionClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   localstore.NormalizeUserID(phone),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJWTKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	}, jwt.WithIssuer(issuer))

	if err != nil || !token.Valid || claims.Phone == "" {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}

// AuthMiddleware verifies the bearer token and sets the phone in the context.
// A token is only honoured while the stored session still belongs to its
// phone, so logging out revokes every token issued before.
func AuthMiddleware(auth services.AuthServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseSessionToken(parts[1])
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		session, err := auth.CurrentSession()
		if err != nil {
			abortWithError(c, err)
			return
		}
		if localstore.NormalizeUserID(session.Phone) != localstore.NormalizeUserID(claims.Phone) {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Session has ended"))
			return
		}

		c.Set(PhoneKey, claims.Phone)
		c.Next()
	}
}
