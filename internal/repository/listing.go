package repository

import (
	"context"
	"strings"

	"estatehub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultLimit is the page size applied when the caller supplies none.
const DefaultLimit = 50

// ListFilter carries the optional filters of a listing search. Nil pointer
// fields and empty strings mean "not filtered".
type ListFilter struct {
	MinPrice     *float64 // inclusive lower price bound
	MaxPrice     *float64 // inclusive upper price bound
	PropertyType string
	ListingType  string
	City         string // substring match, ignored while Search is set
	State        string // substring match, ignored while Search is set
	Bedrooms     *int   // minimum bedroom count
	Status       string // defaults to ACTIVE
	Search       string // keyword across title/description/city/state/address
	OwnerID      *uint
	Limit        int // defaults to DefaultLimit
	Skip         int
}

func (f *ListFilter) normalize() {
	if f.Status == "" {
		f.Status = domain.StatusActive
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
}

// ListingRepository is the persistence port for listings.
type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// imageOrder preloads listing images in their upload order.
func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// buildQuery translates a ListFilter into a GORM query. The search keyword
// OR-matches case-insensitively across title, description, city, state and
// address; while it is present the independent city/state filters are
// suppressed (search takes priority over them).
func (r *ListingRepository) buildQuery(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("status = ?", f.Status)

	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(address) LIKE ?",
			pat, pat, pat, pat, pat,
		)
	} else {
		if f.City != "" {
			q = q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
		}
		if f.State != "" {
			q = q.Where("LOWER(state) LIKE ?", "%"+strings.ToLower(f.State)+"%")
		}
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.ListingType != "" {
		q = q.Where("listing_type = ?", f.ListingType)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms >= ?", *f.Bedrooms)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	return q
}

// List returns the filtered page of listings, newest first, plus the total
// count matching the filter independent of limit/skip.
func (r *ListingRepository) List(ctx context.Context, f ListFilter) ([]domain.Listing, int64, error) {
	f.normalize()
	q := r.buildQuery(ctx, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listings := make([]domain.Listing, 0)
	err := q.Preload("Owner").Preload("Images", imageOrder).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// GetByID fetches one listing with its owner and ordered images.
// Returns gorm.ErrRecordNotFound when the listing does not exist.
func (r *ListingRepository) GetByID(ctx context.Context, id uint) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).Preload("Owner").Preload("Images", imageOrder).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persists a new listing together with its images.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save persists field changes on an already-loaded listing. Associations are
// skipped so a partially preloaded struct cannot clobber them.
func (r *ListingRepository) Save(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

// Delete removes a listing along with its images and any favorites pointing
// at it, in one transaction.
func (r *ListingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&domain.ListingImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Listing{}, id).Error
	})
}

// ByIDs returns the listings matching the given ids, used by compare.
func (r *ListingRepository) ByIDs(ctx context.Context, ids []uint) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0)
	err := r.db.WithContext(ctx).Preload("Owner").Preload("Images", imageOrder).
		Where("id IN ?", ids).
		Find(&listings).Error
	return listings, err
}

// ByOwner returns every listing of one user regardless of status, newest first.
func (r *ListingRepository) ByOwner(ctx context.Context, ownerID uint) ([]domain.Listing, error) {
	listings := make([]domain.Listing, 0)
	err := r.db.WithContext(ctx).Preload("Images", imageOrder).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// Locations returns the distinct non-empty cities and states across all
// listings, each sorted alphabetically.
func (r *ListingRepository) Locations(ctx context.Context) (cities, states []string, err error) {
	err = r.db.WithContext(ctx).Model(&domain.Listing{}).
		Distinct().Where("city <> ''").Order("city").
		Pluck("city", &cities).Error
	if err != nil {
		return nil, nil, err
	}
	err = r.db.WithContext(ctx).Model(&domain.Listing{}).
		Distinct().Where("state <> ''").Order("state").
		Pluck("state", &states).Error
	if err != nil {
		return nil, nil, err
	}
	return cities, states, nil
}

// Recommend derives up to limit ACTIVE listings matching the property types
// the user has favorited, excluding the user's own listings, newest first.
// A user with no favorites gets the unfiltered ACTIVE set (minus their own).
func (r *ListingRepository) Recommend(ctx context.Context, userID uint, limit int) ([]domain.Listing, error) {
	var types []string
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Joins("JOIN listings ON listings.id = favorites.listing_id").
		Where("favorites.user_id = ?", userID).
		Distinct().
		Pluck("listings.property_type", &types).Error
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Where("status = ?", domain.StatusActive).
		Where("owner_id <> ?", userID)
	if len(types) > 0 {
		q = q.Where("property_type IN ?", types)
	}

	listings := make([]domain.Listing, 0)
	err = q.Preload("Owner").Preload("Images", imageOrder).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	return listings, err
}
