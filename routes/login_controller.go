package routes

import (
	"net/http"
	"strings"

	"github.com/ajg/form"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/httpx"
	"github.com/mbolis/survey-portal/log"
	"github.com/mbolis/survey-portal/model"
	"github.com/mbolis/survey-portal/session"
	"github.com/mbolis/survey-portal/views"
)

type loginPage struct {
	Page
	Email string
	Goto  string
	Error string
}

type signupPage struct {
	Page
	Name     string
	LastName string
	Email    string
	Error    string
}

func LoginPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			redirectByRole(w, r, sess.IsAdmin)
			return
		}
		views.Render(w, "login.html", loginPage{
			Page: newPage(r, "Login"),
			Goto: r.URL.Query().Get("goto"),
		})
	}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds loginForm
		err := form.NewDecoder(r.Body).Decode(&creds)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "login.parse_body", "cannot parse form: %s", err)
			return
		}

		page := loginPage{
			Page:  newPage(r, "Login"),
			Email: creds.Email,
			Goto:  r.URL.Query().Get("goto"),
		}
		if creds.Email == "" || creds.Password == "" {
			page.Error = "Please fill in all fields"
			views.Render(w, "login.html", page)
			return
		}

		user, err := app.Login(r.Context(), creds.Email, creds.Password)
		if err != nil {
			log.Debugf("login: %s", err)
			page.Error = "Login failed"
			views.Render(w, "login.html", page)
			return
		}

		err = app.Issue(w, user.ID, user.IsAdmin)
		if err != nil {
			httpx.LogInternalError(w, "login.session", err)
			return
		}

		if target := r.URL.Query().Get("goto"); strings.HasPrefix(target, "/") {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		redirectByRole(w, r, user.IsAdmin)
	}
}

func SignupPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, "signup.html", signupPage{Page: newPage(r, "Sign up")})
	}
}

type signupForm struct {
	Name     string `form:"name"`
	LastName string `form:"lastname"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func Signup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields signupForm
		err := form.NewDecoder(r.Body).Decode(&fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signup.parse_body", "cannot parse form: %s", err)
			return
		}

		page := signupPage{
			Page:     newPage(r, "Sign up"),
			Name:     fields.Name,
			LastName: fields.LastName,
			Email:    fields.Email,
		}
		if fields.Email == "" || fields.Password == "" {
			page.Error = "Please fill in all fields"
			views.Render(w, "signup.html", page)
			return
		}

		user, err := app.Signup(r.Context(), model.SignupRequest{
			Email:        fields.Email,
			PasswordHash: fields.Password,
			Name:         fields.Name,
			LastName:     fields.LastName,
		})
		if err != nil {
			log.Debugf("signup: %s", err)
			page.Error = "Signup failed"
			views.Render(w, "signup.html", page)
			return
		}

		if user.ID > 0 {
			err = app.Issue(w, user.ID, user.IsAdmin)
			if err != nil {
				httpx.LogInternalError(w, "signup.session", err)
				return
			}
		}
		http.Redirect(w, r, "/surveys", http.StatusSeeOther)
	}
}

// Logout clears the session regardless of the API call's outcome.
func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			err := app.Client.Logout(r.Context(), sess.UserID)
			if err != nil {
				log.Warnf("logout: %s", err)
			}
		}
		app.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func redirectByRole(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	if isAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/surveys", http.StatusSeeOther)
	}
}
