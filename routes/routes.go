package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/routes/middlewares"
	"github.com/mbolis/survey-portal/session"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(app.Verifier())

	root.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			if sess.IsAdmin {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
			} else {
				http.Redirect(w, r, "/surveys", http.StatusSeeOther)
			}
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	root.Get("/login", LoginPage(app))
	root.Post("/login", Login(app))
	root.Get("/signup", SignupPage(app))
	root.Post("/signup", Signup(app))
	root.Post("/logout", Logout(app))

	root.Route("/surveys", func(r chi.Router) {
		r.Use(middlewares.RequireUser)

		r.Get("/", ListSurveys(app))
		r.Get(`/{id:^\d+$}`, SurveyDetail(app))
		r.Post(`/{id:^\d+$}/answers`, SubmitAnswers(app))
		r.Get(`/{id:^\d+$}/responses`, UserResponses(app))
	})

	root.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.RequireUser, middlewares.RequireAdmin)

		r.Get("/", AdminPanel(app))
		r.Get("/create", CreateSurveyPage(app))
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/update", UpdateSurveyPage(app))
		r.Post("/update", UpdateSurvey(app))
		r.Get("/delete", DeleteSurveyPage(app))
		r.Post("/delete", DeleteSurvey(app))

		r.Route(`/analytics/{id:^\d+$}`, func(r chi.Router) {
			r.Get("/", Dashboard(app))
			r.Get("/charts", DashboardCharts(app))
			r.Get("/data", DashboardData(app))
			r.Get("/export/xlsx", ExportWorkbook(app))
			r.Get("/export/pdf", ExportDocument(app))
		})
	})

	return root
}
