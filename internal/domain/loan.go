package domain

import "time"

// Loan application status values
const (
	LoanPending  = "PENDING"
	LoanApproved = "APPROVED"
	LoanRejected = "REJECTED"
)

// LoanApplication Model
type LoanApplication struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	ListingID    *uint     `json:"listingId"` // optional reference to a listing
	Listing      *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	LoanAmount   float64   `gorm:"not null" json:"loanAmount"`
	Tenure       int       `gorm:"not null" json:"tenure"` // months
	Purpose      string    `json:"purpose"`
	Employment   string    `json:"employment"`
	AnnualIncome float64   `gorm:"not null" json:"annualIncome"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Status       string    `gorm:"default:PENDING" json:"status"` // PENDING, APPROVED or REJECTED
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
