package domain

import "time"

// Favorite is a user's bookmark of a listing. The (user, listing) pair is
// unique; toggling an existing favorite on again is a no-op.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_listing" json:"userId"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_fav_user_listing" json:"listingId"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	CreatedAt time.Time `json:"createdAt"`
}
