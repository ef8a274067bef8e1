package repository

import (
	"context"
	"errors"
	"testing"

	"estatehub/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddFavoriteIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)
	owner := seedUser(t, gdb, "Asha", "asha@example.com")
	fan := seedUser(t, gdb, "Bela", "bela@example.com")
	repo := NewFavoriteRepository(gdb)
	ctx := context.Background()

	l := seedListing(t, gdb, domain.Listing{OwnerID: owner.ID, Price: 1})

	first, err := repo.Add(ctx, fan.ID, l.ID)
	require.NoError(t, err)
	second, err := repo.Add(ctx, fan.ID, l.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, gdb.Model(&domain.Favorite{}).Where("user_id = ?", fan.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddFavoriteMissingListing(t *testing.T) {
	gdb := openTestDB(t)
	fan := seedUser(t, gdb, "Bela", "bela@example.com")
	repo := NewFavoriteRepository(gdb)

	_, err := repo.Add(context.Background(), fan.ID, 4242)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRemoveFavoriteAbsentIsSuccess(t *testing.T) {
	gdb := openTestDB(t)
	fan := seedUser(t, gdb, "Bela", "bela@example.com")
	repo := NewFavoriteRepository(gdb)

	require.NoError(t, repo.Remove(context.Background(), fan.ID, 4242))
}

func TestListFavoritesByUser(t *testing.T) {
	gdb := openTestDB(t)
	owner := seedUser(t, gdb, "Asha", "asha@example.com")
	fan := seedUser(t, gdb, "Bela", "bela@example.com")
	repo := NewFavoriteRepository(gdb)
	ctx := context.Background()

	a := seedListing(t, gdb, domain.Listing{Title: "First", OwnerID: owner.ID, Price: 1})
	b := seedListing(t, gdb, domain.Listing{Title: "Second", OwnerID: owner.ID, Price: 2})

	_, err := repo.Add(ctx, fan.ID, a.ID)
	require.NoError(t, err)
	_, err = repo.Add(ctx, fan.ID, b.ID)
	require.NoError(t, err)
	// Another user's favorite must not leak in.
	_, err = repo.Add(ctx, owner.ID, a.ID)
	require.NoError(t, err)

	got, err := repo.ListByUser(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, f := range got {
		require.Equal(t, fan.ID, f.UserID)
		require.NotZero(t, f.Listing.ID)
		require.Equal(t, owner.Email, f.Listing.Owner.Email)
	}
}
