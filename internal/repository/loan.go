package repository

import (
	"context"

	"estatehub/internal/domain"

	"gorm.io/gorm"
)

// LoanRepository is the persistence port for loan applications.
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// ListByUser returns the user's loan applications newest first, with the
// referenced listing populated when one is set.
func (r *LoanRepository) ListByUser(ctx context.Context, userID uint) ([]domain.LoanApplication, error) {
	loans := make([]domain.LoanApplication, 0)
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}
