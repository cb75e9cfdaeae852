package render

import (
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/yatube/yatube/pkg/yatube/routes"
)

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"indexURL":         func() string { return routes.Index },
		"createURL":        func() string { return routes.Create },
		"followIndexURL":   func() string { return routes.FollowIndex },
		"loginURL":         func() string { return routes.Login },
		"logoutURL":        func() string { return routes.Logout },
		"signupURL":        func() string { return routes.Signup },
		"passwordURL":      func() string { return routes.PasswordChange },
		"aboutAuthorURL":   func() string { return routes.AboutAuthor },
		"aboutTechURL":     func() string { return routes.AboutTech },
		"groupURL":         routes.Group,
		"profileURL":       routes.Profile,
		"followURL":        routes.ProfileFollow,
		"unfollowURL":      routes.ProfileUnfollow,
		"postURL":          routes.PostDetail,
		"editURL":          routes.PostEdit,
		"deleteURL":        routes.PostDelete,
		"commentURL":       routes.AddComment,
		"commentDeleteURL": routes.CommentDelete,
		"media":            func(path string) string { return "/media/" + path },
		"thumb":            func(path string) string { return "/media/" + path },
		"linebreaksbr":     linebreaksbr,
		"truncatewords":    truncateWords,
		"date":             func(t time.Time) string { return t.Format("2 Jan 2006") },
		"year":             func() int { return time.Now().Year() },
		"dict":             dict,
	}
}

// dict builds a map from key/value pairs so includes can take several arguments
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func linebreaksbr(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func truncateWords(n int, text string) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + " …"
}
