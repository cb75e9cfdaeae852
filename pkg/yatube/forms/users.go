package forms

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

// SignupForm creates a new account
type SignupForm struct {
	FirstName string      `form:"first_name" validate:"max=150"`
	LastName  string      `form:"last_name" validate:"max=150"`
	Username  string      `form:"username" validate:"required,max=150,username"`
	Email     string      `form:"email" validate:"omitempty,email"`
	Password1 string      `form:"password1" validate:"required,min=8,bcrypt"`
	Password2 string      `form:"password2" validate:"required,eqfield=Password1"`
	Errors    FieldErrors `form:"-"`
}

func BindSignup(c *gin.Context) (SignupForm, error) {
	var form SignupForm
	err := c.ShouldBind(&form)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	return form, err
}

// Validate also rejects usernames that are already taken
func (f *SignupForm) Validate(db *gorm.DB) bool {
	f.Errors = check(f)
	if _, bad := f.Errors["username"]; !bad {
		var count int64
		db.Model(&models.User{}).Where("username = ?", f.Username).Count(&count)
		if count > 0 {
			f.Errors.Add("username", "A user with that username already exists.")
		}
	}
	return f.Errors.Valid()
}

// LoginForm authenticates with username and password
type LoginForm struct {
	Username string      `form:"username" validate:"required"`
	Password string      `form:"password" validate:"required"`
	Errors   FieldErrors `form:"-"`
}

func BindLogin(c *gin.Context) (LoginForm, error) {
	var form LoginForm
	err := c.ShouldBind(&form)
	form.Username = strings.TrimSpace(form.Username)
	return form, err
}

func (f *LoginForm) Validate() bool {
	f.Errors = check(f)
	return f.Errors.Valid()
}

// PasswordChangeForm replaces the password of the logged in user
type PasswordChangeForm struct {
	OldPassword  string      `form:"old_password" validate:"required"`
	NewPassword1 string      `form:"new_password1" validate:"required,min=8,bcrypt"`
	NewPassword2 string      `form:"new_password2" validate:"required,eqfield=NewPassword1"`
	Errors       FieldErrors `form:"-"`
}

func BindPasswordChange(c *gin.Context) (PasswordChangeForm, error) {
	var form PasswordChangeForm
	err := c.ShouldBind(&form)
	return form, err
}

func (f *PasswordChangeForm) Validate() bool {
	f.Errors = check(f)
	return f.Errors.Valid()
}
