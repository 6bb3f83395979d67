// Package analytics shapes server-computed survey statistics into chart
// data. It filters, maps and truncates; it never computes statistics.
package analytics

import (
	"sort"

	"github.com/mbolis/survey-portal/model"
)

const maxLabelLen = 30

type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MultipleChoiceChart is one pie chart: a question whose mode is known but
// whose average is not.
type MultipleChoiceChart struct {
	Question string              `json:"question"`
	Stats    model.QuestionStats `json:"stats"`
	Slices   []PieSlice          `json:"slices"`
}

// RatingRow is one bar-chart row: a question with a numeric average.
type RatingRow struct {
	Question string              `json:"question"`
	Label    string              `json:"label"`
	Average  float64             `json:"average"`
	Median   float64             `json:"median"`
	Stats    model.QuestionStats `json:"stats"`
}

type Dashboard struct {
	SurveyID        int                   `json:"surveyId"`
	QuestionsCount  int                   `json:"questionsCount"`
	GlobalMode      string                `json:"globalMode"`
	GlobalModeCount int                   `json:"globalModeCount"`
	Rating          []RatingRow           `json:"rating"`
	MultipleChoice  []MultipleChoiceChart `json:"multipleChoice"`
}

// Build partitions questions into the two display groups.
// A question is a rating question iff its average is non-null; otherwise it
// is multiple-choice iff its mode is non-null; questions with neither are
// omitted from both groups. Questions are ordered by text for stable output.
func Build(stats model.SurveyStats) Dashboard {
	dash := Dashboard{
		SurveyID:        stats.SurveyID,
		QuestionsCount:  stats.QuestionsCount,
		GlobalMode:      stats.GlobalMode,
		GlobalModeCount: stats.GlobalModeCount,
		Rating:          []RatingRow{},
		MultipleChoice:  []MultipleChoiceChart{},
	}

	questions := make([]string, 0, len(stats.StatsByQuestion))
	for q := range stats.StatsByQuestion {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	for _, q := range questions {
		qs := stats.StatsByQuestion[q]
		switch {
		case qs.Average != nil:
			row := RatingRow{
				Question: q,
				Label:    TruncateLabel(q, maxLabelLen),
				Average:  *qs.Average,
				Stats:    qs,
			}
			if qs.Median != nil {
				row.Median = *qs.Median
			}
			dash.Rating = append(dash.Rating, row)
		case qs.Mode != nil:
			dash.MultipleChoice = append(dash.MultipleChoice, MultipleChoiceChart{
				Question: q,
				Stats:    qs,
				Slices:   pieSlices(qs),
			})
		}
	}

	return dash
}

func pieSlices(qs model.QuestionStats) []PieSlice {
	if qs.Mode == nil {
		return []PieSlice{}
	}
	value := qs.Count
	if value == 0 {
		value = 1
	}
	return []PieSlice{{Name: *qs.Mode, Value: value}}
}

// TruncateLabel shortens long question texts for axis display.
func TruncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
