package identity

import (
	"strings"

	"github.com/nexkart/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user role
type Role string

const (
	RoleRetailer   Role = "retailer"
	RoleWholesaler Role = "wholesaler"
	RoleAdmin      Role = "admin"
)

// IsValid checks if the role is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleRetailer, RoleWholesaler, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the shop
type User struct {
	shared.BaseEntity
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Name         string `gorm:"type:varchar(200)"`
	Phone        string `gorm:"type:varchar(30)"`
	Address      string `gorm:"type:text"`
	AvatarURL    string `gorm:"type:text"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'retailer'"`
	IsVerified   bool   `gorm:"not null;default:false"`
	BusinessID   string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a bcrypt-hashed password.
// Retailers are verified immediately; wholesalers need admin approval.
func NewUser(email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   role == RoleRetailer,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Verify marks the user as verified
func (u *User) Verify() error {
	if u.Role != RoleWholesaler {
		return shared.NewDomainError("INVALID_STATE", "Only wholesaler accounts require verification")
	}
	u.IsVerified = true
	return nil
}

// UpdateProfile updates the user's editable profile fields
func (u *User) UpdateProfile(name, phone, address, avatarURL string) {
	u.Name = name
	u.Phone = phone
	u.Address = address
	u.AvatarURL = avatarURL
}
