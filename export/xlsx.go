// Package export turns already-fetched survey statistics into downloadable
// files. Nothing here talks to the network.
package export

import (
	"sort"
	"strconv"

	"github.com/mbolis/survey-portal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook builds the two-sheet spreadsheet: a "Summary" sheet with survey
// totals and a "Questions" sheet with one row per question. Cell values
// mirror the fetched statistics exactly; null aggregates become "N/A".
func Workbook(stats model.SurveyStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", "Summary")
	if err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Survey ID", stats.SurveyID},
		{"Total Questions", stats.QuestionsCount},
		{"Global Mode", stats.GlobalMode},
		{"Global Mode Count", stats.GlobalModeCount},
	}
	for i := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		err = f.SetSheetRow("Summary", cell, &summary[i])
		if err != nil {
			return nil, err
		}
	}

	_, err = f.NewSheet("Questions")
	if err != nil {
		return nil, err
	}

	questions := make([]string, 0, len(stats.StatsByQuestion))
	for q := range stats.StatsByQuestion {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	rows := [][]any{{"Question", "Count", "Median", "Average", "Mode"}}
	for _, q := range questions {
		qs := stats.StatsByQuestion[q]
		mode := "N/A"
		if qs.Mode != nil {
			mode = *qs.Mode
		}
		rows = append(rows, []any{
			q,
			strconv.Itoa(qs.Count),
			floatOrNA(qs.Median),
			floatOrNA(qs.Average),
			mode,
		})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		err = f.SetSheetRow("Questions", cell, &rows[i])
		if err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
