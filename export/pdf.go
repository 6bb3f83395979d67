package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/mbolis/survey-portal/analytics"
	"github.com/wcharczuk/go-chart/v2"
)

// A4 portrait layout, millimeters.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 10.0
	usableW    = pageWidth - 2*margin
	usableH    = pageHeight - margin
)

// Document renders the dashboard as a rasterized multi-page PDF: every chart
// is drawn to a PNG and the images are flowed across fixed-size pages. The
// export is intentionally lossy; text inside charts is not selectable.
func Document(dash analytics.Dashboard) ([]byte, error) {
	images, err := renderCharts(dash)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Survey %d Analysis", dash.SurveyID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(usableW, 12, "Survey Analysis", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range [][2]string{
		{"Survey ID", strconv.Itoa(dash.SurveyID)},
		{"Total Questions", strconv.Itoa(dash.QuestionsCount)},
		{"Global Mode", dash.GlobalMode},
		{"Global Mode Count", strconv.Itoa(dash.GlobalModeCount)},
	} {
		pdf.CellFormat(50, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(usableW-50, 7, line[1], "", 1, "L", false, 0, "")
	}

	y := pdf.GetY() + 5
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range images {
		name := fmt.Sprintf("chart-%d", i)
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.png))
		if pdf.Err() {
			return nil, pdf.Error()
		}

		h := usableW * info.Height() / info.Width()
		if y+h > usableH {
			pdf.AddPage()
			y = margin
		}
		pdf.ImageOptions(name, margin, y, usableW, h, false, opts, 0, "")
		y += h + 5
	}

	var buf bytes.Buffer
	err = pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type chartImage struct {
	title string
	png   []byte
}

func renderCharts(dash analytics.Dashboard) ([]chartImage, error) {
	var images []chartImage

	if len(dash.Rating) > 0 {
		bars := make([]chart.Value, len(dash.Rating))
		maxAvg := 0.0
		for i, row := range dash.Rating {
			bars[i] = chart.Value{Label: row.Label, Value: row.Average}
			if row.Average > maxAvg {
				maxAvg = row.Average
			}
		}
		bar := chart.BarChart{
			Title:    "Rating Questions (Average)",
			Width:    1024,
			Height:   512,
			BarWidth: 60,
			Bars:     bars,
			YAxis: chart.YAxis{
				Range: &chart.ContinuousRange{Min: 0, Max: maxAvg + 1},
			},
		}
		buf := &bytes.Buffer{}
		err := bar.Render(chart.PNG, buf)
		if err != nil {
			return nil, err
		}
		images = append(images, chartImage{title: bar.Title, png: buf.Bytes()})
	}

	for _, mc := range dash.MultipleChoice {
		values := make([]chart.Value, len(mc.Slices))
		for i, slice := range mc.Slices {
			values[i] = chart.Value{Label: slice.Name, Value: float64(slice.Value)}
		}
		pie := chart.PieChart{
			Title:  analytics.TruncateLabel(mc.Question, 60),
			Width:  512,
			Height: 512,
			Values: values,
		}
		buf := &bytes.Buffer{}
		err := pie.Render(chart.PNG, buf)
		if err != nil {
			return nil, err
		}
		images = append(images, chartImage{title: pie.Title, png: buf.Bytes()})
	}

	return images, nil
}
