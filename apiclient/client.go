// Package apiclient talks to the external survey API server. One method per
// endpoint: a single request, a status check, a JSON decode. No retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbolis/survey-portal/model"
	"github.com/pkg/errors"
)

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (user model.User, err error) {
	body := model.LoginRequest{Email: email, PasswordHash: password}
	err = c.send(ctx, "login", http.MethodPost, "/api/UserActions/login", body, &user)
	return
}

func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (user model.User, err error) {
	err = c.send(ctx, "signup", http.MethodPost, "/api/UserActions/signup", req, &user)
	return
}

// Logout uses the path-parameter variant with no request body, matching the
// server's own API docs.
func (c *Client) Logout(ctx context.Context, userID int) error {
	path := fmt.Sprintf("/api/UserActions/logout/%d", userID)
	return c.send(ctx, "logout", http.MethodPost, path, nil, nil)
}

func (c *Client) ListSurveys(ctx context.Context) (surveys []model.Survey, err error) {
	err = c.send(ctx, "list_surveys", http.MethodGet, "/surveys", nil, &surveys)
	return
}

func (c *Client) GetSurvey(ctx context.Context, id int) (survey model.SurveyDetails, err error) {
	path := fmt.Sprintf("/survey/%d", id)
	err = c.send(ctx, "get_survey", http.MethodGet, path, nil, &survey)
	return
}

type Created struct {
	ID int `json:"id"`
}

func (c *Client) CreateSurvey(ctx context.Context, userID int, survey model.NewSurvey) (created Created, err error) {
	path := fmt.Sprintf("/survey/%d", userID)
	err = c.send(ctx, "create_survey", http.MethodPost, path, survey, &created)
	return
}

func (c *Client) UpdateSurvey(ctx context.Context, id int, patch model.SurveyPatch) error {
	path := fmt.Sprintf("/survey/%d", id)
	return c.send(ctx, "update_survey", http.MethodPut, path, patch, nil)
}

// DeleteSurvey calls the one survey route the server exposes under
// /api/Surveys. The odd casing is the server's, not ours.
func (c *Client) DeleteSurvey(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/Surveys/%d", id)
	return c.send(ctx, "delete_survey", http.MethodDelete, path, nil, nil)
}

func (c *Client) SubmitAnswers(ctx context.Context, userID int, batch model.AnswerBatch) error {
	path := fmt.Sprintf("/api/Answers/answers/%d", userID)
	return c.send(ctx, "submit_answers", http.MethodPost, path, batch, nil)
}

func (c *Client) CheckAnswered(ctx context.Context, surveyID, userID int) (bool, error) {
	path := fmt.Sprintf("/api/Answers/check-answer/%d/%d", surveyID, userID)
	var status model.AnswerStatus
	err := c.send(ctx, "check_answered", http.MethodGet, path, nil, &status)
	return status.HasAnswered, err
}

func (c *Client) UserResponses(ctx context.Context, surveyID, userID int) (resp model.UserResponses, err error) {
	path := fmt.Sprintf("/api/Answers/user-responses/%d/%d", surveyID, userID)
	err = c.send(ctx, "user_responses", http.MethodGet, path, nil, &resp)
	return
}

func (c *Client) QuestionStats(ctx context.Context, surveyID int) (stats model.SurveyStats, err error) {
	path := fmt.Sprintf("/QuestionsStats/%d", surveyID)
	err = c.send(ctx, "question_stats", http.MethodGet, path, nil, &stats)
	if stats.StatsByQuestion == nil {
		stats.StatsByQuestion = map[string]model.QuestionStats{}
	}
	return
}

func (c *Client) send(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, op+".marshal")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return errors.Wrap(err, op+".new_request")
	}
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	req.Header.Set("accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, op+".do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(op, resp)
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return errors.Wrap(err, op+".decode")
	}
	return nil
}
