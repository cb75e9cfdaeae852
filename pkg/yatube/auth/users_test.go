package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := CreateUser(db, "leo", "leo@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if !CheckPassword("password123", user.PasswordHash) {
		t.Error("Expected stored hash to match the password")
	}

	cases := []struct {
		username, password string
		want               error
	}{
		{"leo", "password123", ErrUsernameTaken},
		{"bad name", "password123", ErrInvalidUsername},
		{"sam", "short", ErrPasswordTooShort},
		{"sam", strings.Repeat("x", 73), ErrPasswordTooLong},
	}
	for _, tc := range cases {
		if _, err := CreateUser(db, tc.username, "", tc.password); !errors.Is(err, tc.want) {
			t.Errorf("CreateUser(%q) = %v, want %v", tc.username, err, tc.want)
		}
	}
}
