package routes

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestScaleOptionsDefaultsToOneThroughFive(t *testing.T) {
	options, err := scaleOptions(0, 0)
	if err != nil {
		t.Fatalf("scale options: %v", err)
	}
	if len(options) != 5 {
		t.Fatalf("want 5 options, got %d", len(options))
	}
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		if options[i] != want {
			t.Fatalf("option %d: want %q, got %q", i, want, options[i])
		}
	}
}

func TestScaleOptionsCustomRange(t *testing.T) {
	options, err := scaleOptions(2, 4)
	if err != nil {
		t.Fatalf("scale options: %v", err)
	}
	if len(options) != 3 || options[0] != "2" || options[2] != "4" {
		t.Fatalf("unexpected options: %v", options)
	}
}

func TestScaleOptionsInvertedRangeFails(t *testing.T) {
	_, err := scaleOptions(5, 1)
	if err == nil {
		t.Fatal("inverted range must be rejected")
	}
}

func TestScaleOptionsTooWideRangeFails(t *testing.T) {
	_, err := scaleOptions(1, 101)
	if err == nil {
		t.Fatal("ranges of 100+ steps must be rejected")
	}
}

func TestBuildNewSurveyRequiresTitle(t *testing.T) {
	_, err := buildNewSurvey(createForm{Title: "   "})
	if err == nil {
		t.Fatal("blank title must be rejected")
	}
}

func TestBuildNewSurveyRejectsSingleChoiceOption(t *testing.T) {
	_, err := buildNewSurvey(createForm{
		Title: "Pulse",
		Questions: []questionForm{
			{Text: "Pick one", Type: "MultipleChoice", Options: "only one\n"},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "at least two options") {
		t.Fatalf("want two-options error, got %v", err)
	}
}

func TestBuildNewSurveyExpandsScaleQuestions(t *testing.T) {
	survey, err := buildNewSurvey(createForm{
		Title: "Pulse",
		Questions: []questionForm{
			{Text: "Rate it", Type: "Scale", Min: 1, Max: 3},
			{Text: "Pick one", Type: "MultipleChoice", Options: "Yes\nNo\n  \n"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	scale := survey.Questions[0]
	if scale.Type != "Scale" || len(scale.Options) != 3 || scale.Options[0] != "1" || scale.Options[2] != "3" {
		t.Fatalf("unexpected scale question: %+v", scale)
	}
	choice := survey.Questions[1]
	if choice.Type != "MultipleChoice" || len(choice.Options) != 2 {
		t.Fatalf("blank option lines must be dropped: %+v", choice)
	}
}

func TestCreateSurveySendsGeneratedScaleOptions(t *testing.T) {
	api := newStubAPI(t)

	var posted struct {
		Title     string `json:"title"`
		Questions []struct {
			Text    string   `json:"text"`
			Type    string   `json:"question_Type"`
			Options []string `json:"options"`
		} `json:"questions"`
	}
	api.on(http.MethodPost, "/survey/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		json.NewEncoder(w).Encode(map[string]int{"id": 11})
	})

	a := newTestApp(t, api)
	w := postForm(t, Wire(a), "/admin/surveys", url.Values{
		"title":             {"Pulse"},
		"dueDate":           {"2026-09-30T12:00"},
		"isActive":          {"true"},
		"questions.0.text":  {"Rate it"},
		"questions.0.type":  {"Scale"},
		"questions.0.min":   {"0"},
		"questions.0.max":   {"0"},
	}, sessionCookie(t, a, 7, true))

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Survey created successfully (ID 11)") {
		t.Fatal("missing creation toast")
	}
	if posted.Title != "Pulse" || len(posted.Questions) != 1 {
		t.Fatalf("unexpected payload: %+v", posted)
	}
	q := posted.Questions[0]
	if q.Type != "Scale" || len(q.Options) != 5 || q.Options[0] != "1" || q.Options[4] != "5" {
		t.Fatalf("scale range must be expanded server-side: %+v", q)
	}
}

func TestCreateSurveyValidationBlocksAPICall(t *testing.T) {
	api := newStubAPI(t)
	a := newTestApp(t, api)

	w := postForm(t, Wire(a), "/admin/surveys", url.Values{
		"title":            {"Pulse"},
		"questions.0.text": {"Pick one"},
		"questions.0.type": {"MultipleChoice"},
	}, sessionCookie(t, a, 7, true))

	if !strings.Contains(w.Body.String(), "at least two options") {
		t.Fatal("missing validation message")
	}
	if api.hitCount(http.MethodPost, "/survey/7") != 0 {
		t.Fatal("invalid surveys must never reach the API")
	}
}

func TestUpdateSurveySendsPatch(t *testing.T) {
	api := newStubAPI(t)

	var patched struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		IsPublic bool   `json:"isPublic"`
	}
	api.on(http.MethodPut, "/survey/5", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patched)
		w.WriteHeader(http.StatusNoContent)
	})
	api.onJSON(http.MethodGet, "/survey/5", expiredSurvey())

	a := newTestApp(t, api)
	w := postForm(t, Wire(a), "/admin/update", url.Values{
		"id":       {"5"},
		"title":    {"Renamed"},
		"isPublic": {"true"},
	}, sessionCookie(t, a, 7, true))

	if !strings.Contains(w.Body.String(), "Survey updated successfully") {
		t.Fatal("missing update toast")
	}
	if patched.ID != 5 || patched.Title != "Renamed" || !patched.IsPublic {
		t.Fatalf("unexpected patch: %+v", patched)
	}
}

func TestDeleteWithoutConfirmationMakesNoAPICall(t *testing.T) {
	api := newStubAPI(t)
	a := newTestApp(t, api)

	w := postForm(t, Wire(a), "/admin/delete", url.Values{
		"id": {"4"},
	}, sessionCookie(t, a, 7, true))

	if !strings.Contains(w.Body.String(), "Please confirm the deletion first") {
		t.Fatal("missing confirmation message")
	}
	if api.hitCount(http.MethodDelete, "/api/Surveys/4") != 0 {
		t.Fatal("unconfirmed deletions must never reach the API")
	}
}

func TestDeleteConfirmedCallsAPI(t *testing.T) {
	api := newStubAPI(t)
	api.on(http.MethodDelete, "/api/Surveys/4", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	a := newTestApp(t, api)
	w := postForm(t, Wire(a), "/admin/delete", url.Values{
		"id":      {"4"},
		"confirm": {"true"},
	}, sessionCookie(t, a, 7, true))

	if !strings.Contains(w.Body.String(), "Survey deleted successfully") {
		t.Fatal("missing deletion toast")
	}
	if api.hitCount(http.MethodDelete, "/api/Surveys/4") != 1 {
		t.Fatal("confirmed deletion must call the API exactly once")
	}
}
