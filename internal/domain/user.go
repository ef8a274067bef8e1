package domain

import "time"

// User role values
const (
	RoleUser  = "USER"
	RoleAgent = "AGENT"
	RoleAdmin = "ADMIN"
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`        // bcrypt hash, never serialized
	Phone     *string   `json:"phone"`
	Role      string    `gorm:"default:USER" json:"role"` // USER, AGENT or ADMIN
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
