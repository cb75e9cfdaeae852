package auth

import (
	"errors"

	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

var (
	ErrInvalidUsername  = errors.New("username may contain only letters, digits and @/./+/-/_ (max 150)")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not be longer than 72 bytes")
	ErrUsernameTaken    = errors.New("a user with that username already exists")
)

// CreateUser registers an account outside of the signup form
func CreateUser(db *gorm.DB, username, email, password string) (*models.User, error) {
	if len(username) > 150 || !models.ValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: username, Email: email, PasswordHash: hashedPassword}
	if err := db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}
