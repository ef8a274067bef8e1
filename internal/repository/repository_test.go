package repository

import (
	"testing"
	"time"

	appdb "estatehub/internal/db"
	"estatehub/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, appdb.AutoMigrate(gdb), "auto-migrate")
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, name, email string) *domain.User {
	t.Helper()
	u := domain.User{Name: name, Email: email, Password: "not-a-real-hash", Role: domain.RoleUser}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

// seedListing fills in required fields left empty by the caller.
func seedListing(t *testing.T, gdb *gorm.DB, l domain.Listing) *domain.Listing {
	t.Helper()
	if l.Title == "" {
		l.Title = "Test listing"
	}
	if l.ListingType == "" {
		l.ListingType = domain.ListingTypeSell
	}
	if l.PropertyType == "" {
		l.PropertyType = domain.PropertyApartment
	}
	if l.Address == "" {
		l.Address = "12 MG Road"
	}
	if l.City == "" {
		l.City = "Pune"
	}
	if l.State == "" {
		l.State = "Maharashtra"
	}
	if l.Status == "" {
		l.Status = domain.StatusActive
	}
	if l.Currency == "" {
		l.Currency = "INR"
	}
	require.NoError(t, gdb.Create(&l).Error)
	return &l
}

func intPtr(v int) *int                 { return &v }
func floatPtr(v float64) *float64       { return &v }
func timeAgo(d time.Duration) time.Time { return time.Now().Add(-d) }
