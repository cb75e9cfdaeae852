package forms

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CommentForm is the add comment form shown on the post page
type CommentForm struct {
	Text   string      `form:"text" validate:"required"`
	Errors FieldErrors `form:"-"`
}

func BindComment(c *gin.Context) (CommentForm, error) {
	var form CommentForm
	err := c.ShouldBind(&form)
	form.Text = strings.TrimSpace(form.Text)
	return form, err
}

func (f *CommentForm) Validate() bool {
	f.Errors = check(f)
	return f.Errors.Valid()
}
