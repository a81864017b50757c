package models

import "golang.org/x/crypto/bcrypt"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type Profile struct {
	Base
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"not null;size:32"`
}

// HashPassword hashes the profile's password
func (p *Profile) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hashed)
	return nil
}

// CheckPassword checks if the provided password matches the stored hash
func (p *Profile) CheckPassword(providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(providedPassword))
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
