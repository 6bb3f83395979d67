package model

import "time"

// Field tags mirror the API server's JSON casing, quirks included.

type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

type Survey struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_At"`
	DueDate     time.Time `json:"dueDate"`
	IsActive    bool      `json:"isActive"`
	IsPublic    bool      `json:"isPublic"`
}

func (s Survey) Expired(now time.Time) bool {
	return !s.DueDate.IsZero() && now.After(s.DueDate)
}

type SurveyDetails struct {
	Survey
	UserID    int        `json:"userId,omitempty"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID          int      `json:"id"`
	SurveyID    int      `json:"surveyId,omitempty"`
	Description string   `json:"description"`
	Type        string   `json:"questionType"`
	Options     []Option `json:"options"`
}

const (
	QuestionScale          = "Scale"
	QuestionMultipleChoice = "MultipleChoice"
)

type Option struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"questionId,omitempty"`
	Text       string `json:"optionText"`
}

// AnswerDraft is one answer held in form state until submission.
type AnswerDraft struct {
	QuestionID int    `json:"question_Id"`
	Text       string `json:"answer_Text"`
}

type AnswerBatch struct {
	SurveyID int           `json:"survey_Id"`
	Answers  []AnswerDraft `json:"answers"`
}

type AnswerStatus struct {
	HasAnswered bool `json:"hasAnswered"`
}

type UserResponses struct {
	SurveyID    int              `json:"surveyId"`
	SurveyTitle string           `json:"surveyTitle"`
	Answers     []ResponseDetail `json:"answers"`
}

type ResponseDetail struct {
	QuestionID   int    `json:"questionId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	UserAnswer   string `json:"userAnswer"`
	AnsweredAt   string `json:"answeredAt"`
}

// QuestionStats holds server-computed aggregates; nothing is computed here.
type QuestionStats struct {
	Count   int      `json:"count"`
	Average *float64 `json:"average"`
	Median  *float64 `json:"median"`
	Mode    *string  `json:"mode"`
}

type SurveyStats struct {
	SurveyID        int                      `json:"survey_Id"`
	QuestionsCount  int                      `json:"questions_Count"`
	GlobalMode      string                   `json:"modaGlobal"`
	GlobalModeCount int                      `json:"modaGlobalCount"`
	StatsByQuestion map[string]QuestionStats `json:"stats_By_Question"`
}

// Request bodies

type LoginRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_Hash"`
}

type SignupRequest struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_Hash"`
	Name         string `json:"name"`
	LastName     string `json:"lastName"`
}

type NewQuestion struct {
	Text    string   `json:"text"`
	Type    string   `json:"question_Type"`
	Options []string `json:"options"`
}

type NewSurvey struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	IsPublic    bool          `json:"isPublic"`
	IsActive    bool          `json:"isActive"`
	DueDate     string        `json:"dueDate"`
	Questions   []NewQuestion `json:"questions"`
}

type SurveyPatch struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	IsActive    bool   `json:"isActive"`
}
