package forms

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func formContext(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func multipartContext(t *testing.T, values map[string]string, fileName string, content []byte) *gin.Context {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.Request = req
	return c
}

func smallPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestPostFormRequiresText(t *testing.T) {
	db := setupTestDB(t)
	form, err := BindPost(formContext(url.Values{"text": {"   "}}))
	require.NoError(t, err)

	assert.False(t, form.Validate(db))
	assert.Equal(t, []string{"This field is required."}, form.Errors.Get("text"))
}

func TestPostFormGroup(t *testing.T) {
	db := setupTestDB(t)
	group := models.Group{Title: "Group", Slug: "group"}
	require.NoError(t, db.Create(&group).Error)

	form, _ := BindPost(formContext(url.Values{"text": {"hello"}, "group": {strconv.Itoa(int(group.ID))}}))
	require.True(t, form.Validate(db), form.Errors)
	require.NotNil(t, form.GroupID)
	assert.Equal(t, group.ID, *form.GroupID)
	assert.True(t, form.SelectedGroup(group.ID))

	form, _ = BindPost(formContext(url.Values{"text": {"hello"}, "group": {"999"}}))
	assert.False(t, form.Validate(db))
	assert.Len(t, form.Errors.Get("group"), 1)
	assert.Nil(t, form.GroupID)

	form, _ = BindPost(formContext(url.Values{"text": {"hello"}, "group": {"abc"}}))
	assert.False(t, form.Validate(db))

	form, _ = BindPost(formContext(url.Values{"text": {"hello"}, "group": {""}}))
	assert.True(t, form.Validate(db))
	assert.Nil(t, form.GroupID)
}

func TestPostFormImage(t *testing.T) {
	db := setupTestDB(t)

	form, err := BindPost(multipartContext(t, map[string]string{"text": "with image"}, "small.png", smallPNG(t)))
	require.NoError(t, err)
	require.NotNil(t, form.Image)
	assert.True(t, form.Validate(db), form.Errors)

	form, err = BindPost(multipartContext(t, map[string]string{"text": "with junk"}, "fake.png", []byte("not an image")))
	require.NoError(t, err)
	assert.False(t, form.Validate(db))
	assert.Len(t, form.Errors.Get("image"), 1)
}

func TestPostFormClearImage(t *testing.T) {
	form, _ := BindPost(formContext(url.Values{"text": {"x"}, "image-clear": {"on"}}))
	assert.True(t, form.ClearsImage())

	form, _ = BindPost(formContext(url.Values{"text": {"x"}}))
	assert.False(t, form.ClearsImage())
}

func TestPostFormFrom(t *testing.T) {
	gid := uint(3)
	form := PostFormFrom(&models.Post{Text: "text", GroupID: &gid})
	assert.Equal(t, "3", form.Group)
	assert.True(t, form.SelectedGroup(3))
}

func TestCommentForm(t *testing.T) {
	form, _ := BindComment(formContext(url.Values{"text": {""}}))
	assert.False(t, form.Validate())

	form, _ = BindComment(formContext(url.Values{"text": {"nice"}}))
	assert.True(t, form.Validate())
}

func TestSignupForm(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.User{Username: "taken", PasswordHash: "x"}).Error)

	valid := url.Values{
		"username":  {"newbie"},
		"email":     {"newbie@example.com"},
		"password1": {"verysecret"},
		"password2": {"verysecret"},
	}
	form, _ := BindSignup(formContext(valid))
	assert.True(t, form.Validate(db), form.Errors)

	cases := map[string]struct {
		field, value, errorField string
	}{
		"taken username":    {"username", "taken", "username"},
		"bad username":      {"username", "has space", "username"},
		"bad email":         {"email", "nope", "email"},
		"short password":    {"password1", "short", "password1"},
		"password mismatch": {"password2", "different1", "password2"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range valid {
				values[k] = v
			}
			values.Set(tc.field, tc.value)
			form, _ := BindSignup(formContext(values))
			assert.False(t, form.Validate(db))
			assert.NotEmpty(t, form.Errors.Get(tc.errorField), form.Errors)
		})
	}
}

func TestLoginAndPasswordChangeForms(t *testing.T) {
	login, _ := BindLogin(formContext(url.Values{"username": {"auth"}}))
	assert.False(t, login.Validate())
	assert.NotEmpty(t, login.Errors.Get("password"))

	change, _ := BindPasswordChange(formContext(url.Values{
		"old_password":  {"oldpassword"},
		"new_password1": {"newpassword"},
		"new_password2": {"newpassword"},
	}))
	assert.True(t, change.Validate())
}

func TestPasswordByteLimit(t *testing.T) {
	db := setupTestDB(t)
	signup := func(password string) SignupForm {
		form, _ := BindSignup(formContext(url.Values{
			"username":  {"newbie"},
			"password1": {password},
			"password2": {password},
		}))
		form.Validate(db)
		return form
	}

	assert.Empty(t, signup(strings.Repeat("a", MaxPasswordBytes)).Errors)
	assert.NotEmpty(t, signup(strings.Repeat("a", MaxPasswordBytes+1)).Errors.Get("password1"))
	// 40 characters, 80 bytes
	assert.NotEmpty(t, signup(strings.Repeat("ж", 40)).Errors.Get("password1"))

	long := strings.Repeat("b", 100)
	change, _ := BindPasswordChange(formContext(url.Values{
		"old_password":  {"oldpassword"},
		"new_password1": {long},
		"new_password2": {long},
	}))
	assert.False(t, change.Validate())
	assert.Equal(t, []string{"Ensure this password has at most 72 bytes."}, change.Errors.Get("new_password1"))
}

func TestFieldErrorsNil(t *testing.T) {
	var errs FieldErrors
	assert.Nil(t, errs.Get("text"))
	assert.True(t, errs.Valid())
}
