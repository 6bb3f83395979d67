package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mbolis/survey-portal/apiclient"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/httpx"
	"github.com/mbolis/survey-portal/log"
	"github.com/mbolis/survey-portal/model"
	"github.com/mbolis/survey-portal/session"
	"github.com/mbolis/survey-portal/views"
)

type surveyCard struct {
	Survey      model.Survey
	HasAnswered bool
}

type surveysPage struct {
	Page
	Cards []surveyCard
	Error string
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		page := surveysPage{Page: newPage(r, "Surveys"), Cards: []surveyCard{}}

		surveys, err := app.ListSurveys(r.Context())
		if err != nil {
			log.Errorf("surveys.list: %s", err)
			page.Error = "Failed to load surveys"
			views.Render(w, "surveys.html", page)
			return
		}

		for _, survey := range surveys {
			answered, err := app.CheckAnswered(r.Context(), survey.ID, sess.UserID)
			if err != nil {
				// the card degrades to "not answered yet"
				log.Debugf("surveys.check_answered(%d): %s", survey.ID, err)
			}
			page.Cards = append(page.Cards, surveyCard{Survey: survey, HasAnswered: answered})
		}

		views.Render(w, "surveys.html", page)
	}
}

type surveyDetailPage struct {
	Page
	Survey      model.SurveyDetails
	Expired     bool
	HasAnswered bool
	Toast       string
}

func SurveyDetail(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}
		sess, _ := session.FromContext(r.Context())

		survey, err := app.GetSurvey(r.Context(), surveyId)
		if err != nil {
			if apiclient.IsNotFound(err) {
				httpx.LogNotFound(w, "get_survey", surveyId)
			} else {
				httpx.LogInternalError(w, "api.get_survey", err)
			}
			return
		}

		answered, err := app.CheckAnswered(r.Context(), surveyId, sess.UserID)
		if err != nil {
			log.Debugf("survey.check_answered(%d): %s", surveyId, err)
		}

		views.Render(w, "survey_detail.html", surveyDetailPage{
			Page:        newPage(r, survey.Title),
			Survey:      survey,
			Expired:     survey.Expired(time.Now()),
			HasAnswered: answered,
		})
	}
}

func SubmitAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}
		sess, _ := session.FromContext(r.Context())

		survey, err := app.GetSurvey(r.Context(), surveyId)
		if err != nil {
			if apiclient.IsNotFound(err) {
				httpx.LogNotFound(w, "get_survey", surveyId)
			} else {
				httpx.LogInternalError(w, "api.get_survey", err)
			}
			return
		}

		page := surveyDetailPage{Page: newPage(r, survey.Title), Survey: survey}
		if survey.Expired(time.Now()) {
			page.Expired = true
			views.Render(w, "survey_detail.html", page)
			return
		}

		err = r.ParseForm()
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "answers.parse_body", "cannot parse form: %s", err)
			return
		}

		// one draft per question, in question order
		batch := model.AnswerBatch{SurveyID: surveyId}
		for _, question := range survey.Questions {
			text := r.PostFormValue(fmt.Sprintf("q%d", question.ID))
			if text == "" {
				continue
			}
			batch.Answers = append(batch.Answers, model.AnswerDraft{
				QuestionID: question.ID,
				Text:       text,
			})
		}

		if len(batch.Answers) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			page.Toast = "Please answer at least one question before submitting"
			views.Render(w, "survey_detail.html", page)
			return
		}

		err = app.SubmitAnswers(r.Context(), sess.UserID, batch)
		if err != nil {
			log.Errorf("answers.submit(%d): %s", surveyId, err)
			page.Toast = "Failed to submit answers, please try again"
			views.Render(w, "survey_detail.html", page)
			return
		}

		page.HasAnswered = true
		views.Render(w, "survey_detail.html", page)
	}
}

type responsesPage struct {
	Page
	Responses model.UserResponses
}

func UserResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}
		sess, _ := session.FromContext(r.Context())

		responses, err := app.UserResponses(r.Context(), surveyId, sess.UserID)
		if err != nil {
			if apiclient.IsNotFound(err) {
				httpx.LogNotFound(w, "user_responses", surveyId)
			} else {
				httpx.LogInternalError(w, "api.user_responses", err)
			}
			return
		}

		views.Render(w, "responses.html", responsesPage{
			Page:      newPage(r, responses.SurveyTitle),
			Responses: responses,
		})
	}
}
