package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mbolis/survey-portal/analytics"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/export"
	"github.com/mbolis/survey-portal/httpx"
	"github.com/mbolis/survey-portal/log"
	"github.com/mbolis/survey-portal/views"
)

type dashboardPage struct {
	Page
	Dashboard analytics.Dashboard
	Error     string
}

func Dashboard(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		page := dashboardPage{Page: newPage(r, "Survey Analysis")}
		stats, err := app.QuestionStats(r.Context(), surveyId)
		if err != nil {
			// inline error; chart rendering halts here
			log.Errorf("analytics.stats(%d): %s", surveyId, err)
			page.Error = "Failed to load survey statistics"
			views.Render(w, "dashboard.html", page)
			return
		}

		page.Dashboard = analytics.Build(stats)
		views.Render(w, "dashboard.html", page)
	}
}

// DashboardCharts renders the interactive pie/bar charts page embedded in
// the dashboard.
func DashboardCharts(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		stats, err := app.QuestionStats(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "api.question_stats", err)
			return
		}
		dash := analytics.Build(stats)

		page := components.NewPage()
		page.PageTitle = "Survey Charts"

		if len(dash.Rating) > 0 {
			labels := make([]string, len(dash.Rating))
			averages := make([]opts.BarData, len(dash.Rating))
			medians := make([]opts.BarData, len(dash.Rating))
			for i, row := range dash.Rating {
				labels[i] = row.Label
				averages[i] = opts.BarData{Value: row.Average}
				medians[i] = opts.BarData{Value: row.Median}
			}

			bar := charts.NewBar()
			bar.SetGlobalOptions(
				charts.WithTitleOpts(opts.Title{Title: "Rating Questions"}),
			)
			bar.SetXAxis(labels).
				AddSeries("Average", averages).
				AddSeries("Median", medians)
			page.AddCharts(bar)
		}

		for _, mc := range dash.MultipleChoice {
			slices := make([]opts.PieData, len(mc.Slices))
			for i, slice := range mc.Slices {
				slices[i] = opts.PieData{Name: slice.Name, Value: slice.Value}
			}

			pie := charts.NewPie()
			pie.SetGlobalOptions(
				charts.WithTitleOpts(opts.Title{Title: analytics.TruncateLabel(mc.Question, 60)}),
			)
			pie.AddSeries("answers", slices)
			page.AddCharts(pie)
		}

		w.Header().Set("content-type", "text/html; charset=utf-8")
		err = page.Render(w)
		if err != nil {
			log.Errorf("analytics.charts(%d): %s", surveyId, err)
		}
	}
}

// DashboardData exposes the shaped chart data as JSON.
func DashboardData(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		stats, err := app.QuestionStats(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "api.question_stats", err)
			return
		}

		render.JSON(w, r, analytics.Build(stats))
	}
}

func ExportWorkbook(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		stats, err := app.QuestionStats(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "api.question_stats", err)
			return
		}

		workbook, err := export.Workbook(stats)
		if err != nil {
			httpx.LogInternalError(w, "export.workbook", err)
			return
		}

		filename := fmt.Sprintf("SurveyAnalytics_%d.xlsx", surveyId)
		w.Header().Set("content-type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("content-disposition", `attachment; filename="`+filename+`"`)
		w.Write(workbook)
	}
}

func ExportDocument(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		stats, err := app.QuestionStats(r.Context(), surveyId)
		if err != nil {
			httpx.LogInternalError(w, "api.question_stats", err)
			return
		}

		document, err := export.Document(analytics.Build(stats))
		if err != nil {
			httpx.LogInternalError(w, "export.document", err)
			return
		}

		filename := fmt.Sprintf("survey-dashboard-%s.pdf", time.Now().Format(time.RFC3339))
		w.Header().Set("content-type", "application/pdf")
		w.Header().Set("content-disposition", `attachment; filename="`+filename+`"`)
		w.Write(document)
	}
}
