package forms

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/pkg/yatube/media"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

// PostForm is the create/edit post form
type PostForm struct {
	Text       string `form:"text" validate:"required"`
	Group      string `form:"group"`
	ClearImage string `form:"image-clear"` // checkbox, any value but "false" means set

	Image   *multipart.FileHeader `form:"-"`
	GroupID *uint                 `form:"-"`
	Errors  FieldErrors           `form:"-"`
}

// PostFormFrom prefills the form with an existing post
func PostFormFrom(post *models.Post) PostForm {
	form := PostForm{Text: post.Text, GroupID: post.GroupID}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
	}
	return form
}

// BindPost reads the submitted post form, including an optional "image" upload
func BindPost(c *gin.Context) (PostForm, error) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		return form, err
	}
	form.Text = strings.TrimSpace(form.Text)
	file, err := c.FormFile("image")
	if err == nil {
		form.Image = file
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return form, err
	}
	return form, nil
}

// Validate checks fields, resolves the group and verifies the upload is an image
func (f *PostForm) Validate(db *gorm.DB) bool {
	f.Errors = check(f)
	f.GroupID = nil

	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 64)
		var group models.Group
		if err != nil || db.First(&group, id).Error != nil {
			f.Errors.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		} else {
			gid := group.ID
			f.GroupID = &gid
		}
	}

	if f.Image != nil {
		file, err := f.Image.Open()
		if err == nil {
			err = media.Check(file)
			file.Close()
		}
		if errors.Is(err, media.ErrImageTooLarge) {
			f.Errors.Add("image", err.Error())
		} else if err != nil {
			f.Errors.Add("image", media.ErrNotImage.Error())
		}
	}
	return f.Errors.Valid()
}

// ClearsImage reports whether the image-clear checkbox was ticked
func (f *PostForm) ClearsImage() bool {
	return f.ClearImage != "" && f.ClearImage != "false"
}

// SelectedGroup reports whether the group option with the given id is selected
func (f *PostForm) SelectedGroup(id uint) bool {
	return f.Group == strconv.FormatUint(uint64(id), 10)
}
