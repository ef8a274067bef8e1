package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"estatehub/internal/config"
	appdb "estatehub/internal/db"
	"estatehub/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAPI spins up the full router against an in-memory sqlite DB with
// caching disabled.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, appdb.AutoMigrate(gdb), "auto-migrate")

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}
	return NewRouter(gdb, nil, cfg), gdb
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// register creates an account through the API and returns its token and id.
func register(t *testing.T, r *gin.Engine, name, email string) (string, uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register: %s", w.Body.String())
	var resp authResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// listingPayload returns a valid creation body that tests tweak per case.
func listingPayload(over gin.H) gin.H {
	body := gin.H{
		"title":        "2BHK apartment in Kothrud",
		"description":  "Bright corner flat",
		"price":        4_500_000,
		"listingType":  domain.ListingTypeSell,
		"propertyType": domain.PropertyApartment,
		"address":      "Plot 12, Kothrud",
		"city":         "Pune",
		"state":        "Maharashtra",
	}
	for k, v := range over {
		body[k] = v
	}
	return body
}

// createListing posts a listing and returns its id.
func createListing(t *testing.T, r *gin.Engine, token string, over gin.H) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/listings", listingPayload(over), token)
	require.Equal(t, http.StatusCreated, w.Code, "create listing: %s", w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)
	require.NotZero(t, created.ID)
	return created.ID
}
