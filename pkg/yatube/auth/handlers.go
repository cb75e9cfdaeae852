package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/forms"
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/render"
	"github.com/yatube/yatube/pkg/yatube/routes"
	"gorm.io/gorm"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// Handler handles the account pages under /auth
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TokenRequest represents the token request body
type TokenRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse represents the token response
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/signup/", h.SignupPage)
	rg.POST("/signup/", h.Signup)
	rg.GET("/login/", h.LoginPage)
	rg.POST("/login/", h.Login)
	rg.GET("/logout/", h.Logout)
	rg.POST("/logout/", h.Logout)
	rg.POST("/token/", h.Token)

	private := rg.Group("", LoginRequired())
	private.GET("/password_change/", h.PasswordChangePage)
	private.POST("/password_change/", h.PasswordChange)
	private.GET("/password_change/done/", h.PasswordChangeDone)
}

func (h *Handler) SignupPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "users/signup.html", gin.H{"form": &forms.SignupForm{}})
}

// Signup creates the account and logs it in
func (h *Handler) Signup(c *gin.Context) {
	form, err := forms.BindSignup(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !form.Validate(h.db) {
		render.Page(c, http.StatusOK, "users/signup.html", gin.H{"form": &form})
		return
	}

	hashedPassword, err := HashPassword(form.Password1)
	if err != nil {
		render.ServerError(c, err)
		return
	}
	user := models.User{
		Username:     form.Username,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: hashedPassword,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			form.Errors.Add("username", "A user with that username already exists.")
			render.Page(c, http.StatusOK, "users/signup.html", gin.H{"form": &form})
			return
		}
		render.ServerError(c, err)
		return
	}

	if err := h.login(c, &user); err != nil {
		render.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, routes.Index)
}

func (h *Handler) LoginPage(c *gin.Context) {
	render.Page(c, http.StatusOK, "users/login.html", gin.H{
		"form": &forms.LoginForm{},
		"next": c.Query("next"),
	})
}

// Login checks the credentials and follows ?next= when it points inside the site
func (h *Handler) Login(c *gin.Context) {
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	form, err := forms.BindLogin(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if !form.Validate() {
		render.Page(c, http.StatusOK, "users/login.html", gin.H{"form": &form, "next": next})
		return
	}

	user, err := h.authenticate(form.Username, form.Password)
	if errors.Is(err, errBadCredentials) {
		form.Errors.Add(forms.NonField, invalidLogin)
		render.Page(c, http.StatusOK, "users/login.html", gin.H{"form": &form, "next": next})
		return
	} else if err != nil {
		render.ServerError(c, err)
		return
	}

	if err := h.login(c, user); err != nil {
		render.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, routes.SafeNext(next, routes.Index))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := LoadSession(c).LogoutUser(); err != nil {
		render.ServerError(c, err)
		return
	}
	c.Set(ContextKeyUser, (*models.User)(nil))
	render.Page(c, http.StatusOK, "users/logged_out.html", nil)
}

func (h *Handler) PasswordChangePage(c *gin.Context) {
	render.Page(c, http.StatusOK, "users/password_change_form.html", gin.H{"form": &forms.PasswordChangeForm{}})
}

func (h *Handler) PasswordChange(c *gin.Context) {
	user := GetUser(c)
	form, err := forms.BindPasswordChange(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	valid := form.Validate()
	if !CheckPassword(form.OldPassword, user.PasswordHash) {
		form.Errors.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
		valid = false
	}
	if !valid {
		render.Page(c, http.StatusOK, "users/password_change_form.html", gin.H{"form": &form})
		return
	}

	hashedPassword, err := HashPassword(form.NewPassword1)
	if err != nil {
		render.ServerError(c, err)
		return
	}
	if err := h.db.Model(user).Update("password_hash", hashedPassword).Error; err != nil {
		render.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, routes.PasswordDone)
}

func (h *Handler) PasswordChangeDone(c *gin.Context) {
	render.Page(c, http.StatusOK, "users/password_change_done.html", nil)
}

// Token issues a bearer token for scripts and API clients
func (h *Handler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authenticate(req.Username, req.Password)
	if errors.Is(err, errBadCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}

	token, err := GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresIn: int(TokenDuration.Seconds())})
}

var errBadCredentials = errors.New("bad credentials")

func (h *Handler) authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := h.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	} else if err != nil {
		return nil, err
	}
	if !user.IsActive || !CheckPassword(password, user.PasswordHash) {
		return nil, errBadCredentials
	}
	return &user, nil
}

func (h *Handler) login(c *gin.Context, user *models.User) error {
	now := time.Now()
	if err := h.db.Model(user).Update("last_login", now).Error; err != nil {
		return err
	}
	if err := LoadSession(c).LoginUser(user.ID); err != nil {
		return err
	}
	setUser(c, user)
	return nil
}
