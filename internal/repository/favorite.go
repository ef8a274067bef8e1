package repository

import (
	"context"

	"estatehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository is the persistence port for favorites.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add bookmarks a listing for a user. The insert rides on the unique
// (user_id, listing_id) index with ON CONFLICT DO NOTHING, so two concurrent
// toggles from the same user still leave exactly one row, and adding an
// existing favorite is a no-op success. Returns gorm.ErrRecordNotFound when
// the listing does not exist.
func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID uint) (*domain.Favorite, error) {
	var listing domain.Listing
	if err := r.db.WithContext(ctx).Select("id").First(&listing, listingID).Error; err != nil {
		return nil, err
	}

	fav := domain.Favorite{UserID: userID, ListingID: listingID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
		DoNothing: true,
	}).Create(&fav).Error
	if err != nil {
		return nil, err
	}

	// On conflict the insert is skipped; fetch the surviving row either way.
	var out domain.Favorite
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove deletes the favorite if present. Deleting zero rows is success.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.Favorite{}).Error
}

// ListByUser returns the user's favorites newest first, with the listing and
// its owner populated.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	favorites := make([]domain.Favorite, 0)
	err := r.db.WithContext(ctx).
		Preload("Listing.Owner").
		Preload("Listing.Images", imageOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
