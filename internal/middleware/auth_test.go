package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/test", AuthRequired(testSecret), func(c *fiber.Ctx) error {
		ctxID, _ := c.UserContext().Value(UserIDKey).(uint)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"userID": c.Locals("userID"),
			"ctxID":  ctxID,
		})
	})

	valid, err := IssueToken(testSecret, 123, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, 123, -time.Hour)
	require.NoError(t, err)
	wrongSecret, err := IssueToken("another-secret", 123, time.Hour)
	require.NoError(t, err)

	sign := func(claims jwt.MapClaims, method jwt.SigningMethod) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.Itoa(7),
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}
	wrongIssuer := base()
	wrongIssuer["iss"] = "someone-else"
	noExp := base()
	delete(noExp, "exp")
	badSub := base()
	badSub["sub"] = "not-a-number"
	zeroSub := base()
	zeroSub["sub"] = "0"

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{name: "Happy Path", authHeader: "Bearer " + valid, expectedStatus: http.StatusOK, expectedUserID: 123},
		{name: "Map claims", authHeader: "Bearer " + sign(base(), jwt.SigningMethodHS256), expectedStatus: http.StatusOK, expectedUserID: 7},
		{name: "Missing Header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "Invalid Format", authHeader: "Basic dXNlcjpwYXNz", expectedStatus: http.StatusUnauthorized},
		{name: "Expired", authHeader: "Bearer " + expired, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Secret", authHeader: "Bearer " + wrongSecret, expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Issuer", authHeader: "Bearer " + sign(wrongIssuer, jwt.SigningMethodHS256), expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Method", authHeader: "Bearer " + sign(base(), jwt.SigningMethodHS512), expectedStatus: http.StatusUnauthorized},
		{name: "Missing Expiry", authHeader: "Bearer " + sign(noExp, jwt.SigningMethodHS256), expectedStatus: http.StatusUnauthorized},
		{name: "Bad Subject", authHeader: "Bearer " + sign(badSub, jwt.SigningMethodHS256), expectedStatus: http.StatusUnauthorized},
		{name: "Zero Subject", authHeader: "Bearer " + sign(zeroSub, jwt.SigningMethodHS256), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				assert.Equal(t, float64(tt.expectedUserID), body["ctxID"])
			} else {
				assert.Equal(t, "UNAUTHORIZED", body["code"])
			}
		})
	}
}
