package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"note-taking-api/apperr"
	"note-taking-api/auth"
	"note-taking-api/config"
	"note-taking-api/models"
	"note-taking-api/store/memstore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "middleware-secret"

func newVerifier(t *testing.T) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(memstore.New(), config.AuthConfig{
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return svc
}

func statusWriter(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if apperr.KindOf(err) == apperr.KindUnauthorized {
		status = http.StatusUnauthorized
	}
	http.Error(w, apperr.MessageOf(err), status)
}

func createTestToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		Email:  userID + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	verifier := newVerifier(t)

	var seen models.Identity
	handler := RequireAuth(verifier, statusWriter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Valid token", func(t *testing.T) {
		seen = models.Identity{}
		rr := serve("Bearer " + createTestToken(t, "user-42", time.Hour))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-42", seen.UserID)
		assert.Equal(t, "user-42@example.com", seen.Email)
	})

	t.Run("Missing Authorization header", func(t *testing.T) {
		rr := serve("")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid token format", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("InvalidToken").Code)
		assert.Equal(t, http.StatusUnauthorized, serve("Basic abc").Code)
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer ").Code)
	})

	t.Run("Expired token", func(t *testing.T) {
		rr := serve("Bearer " + createTestToken(t, "user-1", -24*time.Hour))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token with wrong signature", func(t *testing.T) {
		parts := strings.Split(createTestToken(t, "user-1", time.Hour), ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		rr := serve("Bearer " + tampered)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestIdentityFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	assert.Equal(t, models.Identity{}, IdentityFrom(req.Context()))
}
