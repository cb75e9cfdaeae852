// Package policy holds every authorization rule of the site in one place.
// Handlers ask for a Decision before mutating anything and follow its redirect on deny.
package policy

import (
	"github.com/yatube/yatube/pkg/yatube/models"
	"github.com/yatube/yatube/pkg/yatube/routes"
)

// Decision is the outcome of an authorization check.
// Redirect is where a denied request should be sent.
type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(redirect string) Decision {
	return Decision{Redirect: redirect}
}

// Authenticated requires a logged in user; next is the URL to return to after login
func Authenticated(user *models.User, next string) Decision {
	if user == nil || user.ID == 0 {
		return deny(routes.LoginWithNext(next))
	}
	return allow()
}

// EditPost allows only the author. Anybody else is sent back to the post page.
func EditPost(user *models.User, post *models.Post) Decision {
	if d := Authenticated(user, routes.PostEdit(post.ID)); !d.Allowed {
		return d
	}
	if user.ID != post.AuthorID {
		return deny(routes.PostDetail(post.ID))
	}
	return allow()
}

// DeletePost follows the same rule as EditPost
func DeletePost(user *models.User, post *models.Post) Decision {
	if d := Authenticated(user, routes.PostDetail(post.ID)); !d.Allowed {
		return d
	}
	if user.ID != post.AuthorID {
		return deny(routes.PostDetail(post.ID))
	}
	return allow()
}

// Comment requires a logged in user
func Comment(user *models.User, post *models.Post) Decision {
	return Authenticated(user, routes.PostDetail(post.ID))
}

// DeleteComment allows only the comment author
func DeleteComment(user *models.User, comment *models.Comment) Decision {
	if d := Authenticated(user, routes.PostDetail(comment.PostID)); !d.Allowed {
		return d
	}
	if user.ID != comment.AuthorID {
		return deny(routes.PostDetail(comment.PostID))
	}
	return allow()
}

// Follow forbids following yourself. A denied follow is a silent no-op that
// lands on the same page as a successful one.
func Follow(user *models.User, author *models.User) Decision {
	if d := Authenticated(user, routes.ProfileFollow(author.Username)); !d.Allowed {
		return d
	}
	if user.ID == author.ID {
		return deny(routes.FollowIndex)
	}
	return allow()
}
