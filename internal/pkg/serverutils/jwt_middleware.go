package serverutils

import (
	"errors"
	"time"

	"knagent-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	localUserID = "user_id"
	localRole   = "role"
)

var (
	ErrInvalidToken  = errors.New("could not validate credentials")
	ErrMissingSecret = errors.New("jwt signing secret is empty")
)

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs {sub, role, exp} with HS256.
func GenerateAccessToken(secret, email string, role entity.Role, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := AccessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken returns the subject and role of a valid token.
func ParseAccessToken(secret, tokenStr string) (string, entity.Role, error) {
	if secret == "" {
		return "", "", ErrInvalidToken
	}
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, role, nil
}

func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusUnauthorized,
				"message": "Not authenticated",
			})
		}

		userID, role, err := ParseAccessToken(secret, authHeader[7:])
		if err != nil {
			ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusUnauthorized,
				"message": err.Error(),
			})
		}

		ctx.Locals(localUserID, userID)
		ctx.Locals(localRole, role)
		return ctx.Next()
	}
}

// CurrentUser reads the identity stored by JwtMiddleware.
func CurrentUser(ctx *fiber.Ctx) (string, entity.Role, bool) {
	userID, ok := ctx.Locals(localUserID).(string)
	if !ok || userID == "" {
		return "", "", false
	}
	role, ok := ctx.Locals(localRole).(entity.Role)
	if !ok {
		return "", "", false
	}
	return userID, role, true
}
