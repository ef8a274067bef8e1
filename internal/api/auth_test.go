package api

import (
	"net/http"
	"testing"

	"estatehub/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupAPI(t)

	token, id := register(t, r, "Asha", "asha@example.com")
	require.NotZero(t, id)

	// The fresh token works against a protected route.
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &me)
	require.Equal(t, "asha@example.com", me.User.Email)
	require.Equal(t, domain.RoleUser, me.User.Role)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "asha@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp authResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, id, resp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupAPI(t)
	register(t, r, "Asha", "asha@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Other Asha",
		"email":    "asha@example.com",
		"password": "secret456",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	r, _ := setupAPI(t)

	for name, body := range map[string]gin.H{
		"short password": {"name": "Asha", "email": "a@example.com", "password": "abc"},
		"bad email":      {"name": "Asha", "email": "not-an-email", "password": "secret123"},
		"missing name":   {"email": "a@example.com", "password": "secret123"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	r, _ := setupAPI(t)
	register(t, r, "Asha", "asha@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "asha@example.com",
		"password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardDistinguishesMissingFromInvalid(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp struct {
		Code string `json:"code"`
	}
	decode(t, w, &resp)
	require.Equal(t, "token_required", resp.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	decode(t, w, &resp)
	require.Equal(t, "token_invalid", resp.Code)
}

func TestLoginResponseOmitsPasswordHash(t *testing.T) {
	r, _ := setupAPI(t)
	register(t, r, "Asha", "asha@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "asha@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")
}
