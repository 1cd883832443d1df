package utils

import (
	"fmt"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const contextUserLogin = "user_login"

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func CompareHashAndPassword(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func CreateJwtToken(login string, secretKey []byte, expiration time.Time) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		models.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   login,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiration),
			},
		})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func VerifyToken(tokenString string, secretKey []byte) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	if !token.Valid || claims.Login() == "" {
		return nil, errs.ErrInvalidToken
	}

	return claims, nil
}

// TokenFromRequest prefers the Authorization header and falls back to the
// token query parameter, which is what browser WebSocket clients can send.
func TokenFromRequest(ctx *gin.Context) string {
	header := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ctx.Query("token")
}

func SetLoginInContext(ctx *gin.Context, login string) {
	ctx.Set(contextUserLogin, login)
}

func GetLoginFromContext(ctx *gin.Context) string {
	return ctx.GetString(contextUserLogin)
}
