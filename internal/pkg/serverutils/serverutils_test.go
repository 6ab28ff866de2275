package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		userID, role, ok := CurrentUser(ctx)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return SuccessResponse(ctx, "ok", fiber.Map{"user_id": userID, "role": role})
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	valid, err := GenerateAccessToken(testSecret, "bob@kmagent.com", entity.RoleITTech, time.Minute)
	require.NoError(t, err)
	expired, err := GenerateAccessToken(testSecret, "bob@kmagent.com", entity.RoleITTech, -time.Minute)
	require.NoError(t, err)
	otherKey, err := GenerateAccessToken("other", "bob@kmagent.com", entity.RoleITTech, time.Minute)
	require.NoError(t, err)
	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "bob@kmagent.com", "role": "Admin", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + otherKey, http.StatusUnauthorized},
		{"unknown role", "Bearer " + badRole, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	app := protectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestParseAccessToken_Claims(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "lolo@kmagent.com", entity.RoleHREmployee, 30*time.Minute)
	require.NoError(t, err)

	sub, role, err := ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "lolo@kmagent.com", sub)
	assert.Equal(t, entity.RoleHREmployee, role)
}

func TestAccessToken_EmptySecretRejected(t *testing.T) {
	_, err := GenerateAccessToken("", "attacker@knagent.com", entity.RoleHREmployee, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Role: string(entity.RoleHREmployee),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "attacker@knagent.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, _, err = ParseAccessToken("", forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type signupLike struct {
	Email    string `json:"email" validate:"required,email"`
	Question string `json:"question" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(signupLike{Email: "nope"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Fields["email"])
	assert.Equal(t, "required", verr.Fields["question"])

	assert.NoError(t, ValidateStruct(signupLike{Email: "a@knagent.com", Question: "hi"}))
}

type recordingLogger struct {
	logger.ILogger
	mu     sync.Mutex
	errors []map[string]interface{}
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, details)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	rec := &recordingLogger{ILogger: logger.NewNopLogger()}
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(rec))
	app.Get("/validation", func(ctx *fiber.Ctx) error { return ValidateStruct(signupLike{}) })
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad input") })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("boom") })

	for path, status := range map[string]int{"/validation": 422, "/fiber": 400, "/boom": 500} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, path)

		var body BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, status, body.Code)
	}

	require.Len(t, rec.errors, 1)
	assert.Equal(t, "/boom", rec.errors[0]["path"])
	assert.Equal(t, "boom", rec.errors[0]["error"])
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(3, nil), func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	// The window is second-aligned, so at most one reset can happen during the burst.
	limited := 0
	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.GreaterOrEqual(t, limited, 4)
}
