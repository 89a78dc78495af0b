package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// User is a login account. The application only ever holds the seeded one.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"column:username;size:191;uniqueIndex;not null"`
	PasswordHash []byte `json:"-" gorm:"column:password;not null"`
}

func (User) TableName() string {
	return "users"
}

// SeedUser creates the account unless one already exists under the same username.
func SeedUser(db *gorm.DB, username string, hash []byte) error {
	var existing User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Create(&User{Username: username, PasswordHash: hash}).Error; err != nil {
		return fmt.Errorf("failed to seed user %s: %w", username, err)
	}
	return nil
}
