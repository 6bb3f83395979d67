package routes

import (
	"net/http"

	"github.com/mbolis/survey-portal/session"
)

// Page carries the data every template's header needs.
type Page struct {
	Title   string
	Session *session.Session
}

func newPage(r *http.Request, title string) Page {
	page := Page{Title: title}
	if sess, ok := session.FromContext(r.Context()); ok {
		page.Session = &sess
	}
	return page
}
