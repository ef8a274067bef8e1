package api

import (
	"fmt"
	"net/http"
	"testing"

	"estatehub/internal/domain"

	"github.com/stretchr/testify/require"
)

type favoritesResponse struct {
	Favorites []domain.Favorite `json:"favorites"`
}

func TestFavoriteLifecycle(t *testing.T) {
	r, _ := setupAPI(t)
	sellerToken, _ := register(t, r, "Asha", "asha@example.com")
	buyerToken, _ := register(t, r, "Bela", "bela@example.com")

	id := createListing(t, r, sellerToken, nil)
	path := fmt.Sprintf("/api/favorites/%d", id)

	w := doJSON(t, r, http.MethodPost, path, nil, buyerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Favoriting twice stays a success and leaves a single entry
	w = doJSON(t, r, http.MethodPost, path, nil, buyerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/favorites", nil, buyerToken)
	require.Equal(t, http.StatusOK, w.Code)
	var resp favoritesResponse
	decode(t, w, &resp)
	require.Len(t, resp.Favorites, 1)
	require.Equal(t, id, resp.Favorites[0].ListingID)
	require.Equal(t, "Asha", resp.Favorites[0].Listing.Owner.Name)

	w = doJSON(t, r, http.MethodDelete, path, nil, buyerToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/favorites", nil, buyerToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = favoritesResponse{}
	decode(t, w, &resp)
	require.Empty(t, resp.Favorites)
}

func TestAddFavoriteMissingListing(t *testing.T) {
	r, _ := setupAPI(t)
	token, _ := register(t, r, "Bela", "bela@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/favorites/9999", nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFavoriteAbsentSucceeds(t *testing.T) {
	r, _ := setupAPI(t)
	token, _ := register(t, r, "Bela", "bela@example.com")

	w := doJSON(t, r, http.MethodDelete, "/api/favorites/9999", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFavoritesRequireAuth(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/favorites", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/favorites/1", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
