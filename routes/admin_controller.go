package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ajg/form"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/httpx"
	"github.com/mbolis/survey-portal/log"
	"github.com/mbolis/survey-portal/model"
	"github.com/mbolis/survey-portal/views"
)

type adminPage struct {
	Page
	Surveys []model.Survey
	Error   string
}

func AdminPanel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := adminPage{Page: newPage(r, "Administration"), Surveys: []model.Survey{}}

		surveys, err := app.ListSurveys(r.Context())
		if err != nil {
			log.Errorf("admin.list_surveys: %s", err)
			page.Error = "Failed to load surveys"
		} else {
			page.Surveys = surveys
		}

		views.Render(w, "admin.html", page)
	}
}

type createPage struct {
	Page
	DefaultDue string
	Created    bool
	CreatedID  int
	PublicLink string
	Error      string
}

func CreateSurveyPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, "admin_create.html", createPage{
			Page:       newPage(r, "Create Survey"),
			DefaultDue: defaultDueDate(),
		})
	}
}

type createForm struct {
	Title       string         `form:"title"`
	Description string         `form:"description"`
	DueDate     string         `form:"dueDate"`
	IsPublic    bool           `form:"isPublic"`
	IsActive    bool           `form:"isActive"`
	Questions   []questionForm `form:"questions"`
}

type questionForm struct {
	Text    string `form:"text"`
	Type    string `form:"type"`
	Options string `form:"options"`
	Min     int    `form:"min"`
	Max     int    `form:"max"`
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields createForm
		err := form.NewDecoder(r.Body).Decode(&fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "create_survey.parse_body", "cannot parse form: %s", err)
			return
		}

		page := createPage{Page: newPage(r, "Create Survey"), DefaultDue: defaultDueDate()}
		survey, err := buildNewSurvey(fields)
		if err != nil {
			page.Error = err.Error()
			views.Render(w, "admin_create.html", page)
			return
		}

		created, err := app.CreateSurvey(r.Context(), page.Session.UserID, survey)
		if err != nil {
			log.Errorf("admin.create_survey: %s", err)
			page.Error = "Failed to create survey"
			views.Render(w, "admin_create.html", page)
			return
		}

		page.Created = true
		page.CreatedID = created.ID
		if survey.IsPublic {
			page.PublicLink = fmt.Sprintf("http://%s/surveys/%d", r.Host, created.ID)
		}
		views.Render(w, "admin_create.html", page)
	}
}

func buildNewSurvey(fields createForm) (survey model.NewSurvey, err error) {
	if strings.TrimSpace(fields.Title) == "" {
		return survey, fmt.Errorf("title is required")
	}

	survey = model.NewSurvey{
		Title:       fields.Title,
		Description: fields.Description,
		IsPublic:    fields.IsPublic,
		IsActive:    fields.IsActive,
		DueDate:     fields.DueDate,
	}
	for i, q := range fields.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return survey, fmt.Errorf("question %d has no text", i+1)
		}

		question := model.NewQuestion{Text: q.Text, Type: q.Type}
		if q.Type == model.QuestionScale {
			question.Options, err = scaleOptions(q.Min, q.Max)
			if err != nil {
				return survey, fmt.Errorf("question %d: %w", i+1, err)
			}
		} else {
			question.Type = model.QuestionMultipleChoice
			for _, line := range strings.Split(q.Options, "\n") {
				if opt := strings.TrimSpace(line); opt != "" {
					question.Options = append(question.Options, opt)
				}
			}
			if len(question.Options) < 2 {
				return survey, fmt.Errorf("question %d needs at least two options", i+1)
			}
		}
		survey.Questions = append(survey.Questions, question)
	}
	return survey, nil
}

// scaleOptions expands a numeric min/max range into a generated option list.
func scaleOptions(min, max int) ([]string, error) {
	if min == 0 && max == 0 {
		min, max = 1, 5
	}
	if max < min {
		return nil, fmt.Errorf("scale range %d..%d is empty", min, max)
	}
	if max-min >= 100 {
		return nil, fmt.Errorf("scale range %d..%d is too wide", min, max)
	}

	options := make([]string, 0, max-min+1)
	for v := min; v <= max; v++ {
		options = append(options, strconv.Itoa(v))
	}
	return options, nil
}

func defaultDueDate() string {
	return time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02T15:04")
}

type updatePage struct {
	Page
	Survey  *model.SurveyDetails
	Updated bool
	Error   string
}

func UpdateSurveyPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := updatePage{Page: newPage(r, "Update Survey")}

		if rawId := r.URL.Query().Get("id"); rawId != "" {
			surveyId, err := strconv.Atoi(rawId)
			if err != nil {
				page.Error = "Invalid ID format"
				views.Render(w, "admin_update.html", page)
				return
			}

			survey, err := app.GetSurvey(r.Context(), surveyId)
			if err != nil {
				log.Debugf("admin.get_survey(%d): %s", surveyId, err)
				page.Error = "Failed to load survey"
			} else {
				page.Survey = &survey
			}
		}

		views.Render(w, "admin_update.html", page)
	}
}

type updateForm struct {
	ID          int    `form:"id"`
	Title       string `form:"title"`
	Description string `form:"description"`
	IsPublic    bool   `form:"isPublic"`
	IsActive    bool   `form:"isActive"`
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields updateForm
		err := form.NewDecoder(r.Body).Decode(&fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "update_survey.parse_body", "cannot parse form: %s", err)
			return
		}

		page := updatePage{Page: newPage(r, "Update Survey")}
		err = app.UpdateSurvey(r.Context(), fields.ID, model.SurveyPatch{
			ID:          fields.ID,
			Title:       fields.Title,
			Description: fields.Description,
			IsPublic:    fields.IsPublic,
			IsActive:    fields.IsActive,
		})
		if err != nil {
			log.Errorf("admin.update_survey(%d): %s", fields.ID, err)
			page.Error = "Update failed"
		} else {
			page.Updated = true
			if survey, err := app.GetSurvey(r.Context(), fields.ID); err == nil {
				page.Survey = &survey
			}
		}

		views.Render(w, "admin_update.html", page)
	}
}

type deletePage struct {
	Page
	ID      string
	Deleted bool
	Error   string
}

func DeleteSurveyPage(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, "admin_delete.html", deletePage{Page: newPage(r, "Delete Survey")})
	}
}

type deleteForm struct {
	ID      string `form:"id"`
	Confirm bool   `form:"confirm"`
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields deleteForm
		err := form.NewDecoder(r.Body).Decode(&fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "delete_survey.parse_body", "cannot parse form: %s", err)
			return
		}

		page := deletePage{Page: newPage(r, "Delete Survey"), ID: fields.ID}
		surveyId, err := strconv.Atoi(fields.ID)
		if err != nil || fields.ID == "" {
			page.Error = "Please enter a Survey ID"
			views.Render(w, "admin_delete.html", page)
			return
		}
		if !fields.Confirm {
			page.Error = "Please confirm the deletion first"
			views.Render(w, "admin_delete.html", page)
			return
		}

		err = app.DeleteSurvey(r.Context(), surveyId)
		if err != nil {
			log.Errorf("admin.delete_survey(%d): %s", surveyId, err)
			page.Error = "Failed to delete survey"
		} else {
			page.Deleted = true
			page.ID = ""
		}

		views.Render(w, "admin_delete.html", page)
	}
}
