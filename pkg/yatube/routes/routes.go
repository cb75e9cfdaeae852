// Package routes builds the site's URLs so handlers, policies and templates agree on them.
package routes

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	Index          = "/"
	Create         = "/create/"
	FollowIndex    = "/follow/"
	Login          = "/auth/login/"
	Logout         = "/auth/logout/"
	Signup         = "/auth/signup/"
	PasswordChange = "/auth/password_change/"
	PasswordDone   = "/auth/password_change/done/"
	AboutAuthor    = "/about/author/"
	AboutTech      = "/about/tech/"
)

func Group(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

func Profile(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func ProfileFollow(username string) string {
	return Profile(username) + "follow/"
}

func ProfileUnfollow(username string) string {
	return Profile(username) + "unfollow/"
}

func PostDetail(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func PostEdit(id uint) string {
	return PostDetail(id) + "edit/"
}

func PostDelete(id uint) string {
	return PostDetail(id) + "delete/"
}

func AddComment(id uint) string {
	return PostDetail(id) + "comment/"
}

func CommentDelete(postID, commentID uint) string {
	return fmt.Sprintf("%scomments/%d/delete/", PostDetail(postID), commentID)
}

// LoginWithNext is the login page remembering where to come back to
func LoginWithNext(next string) string {
	if next == "" {
		return Login
	}
	return Login + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local path, fallback otherwise
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}
