package report

import (
	"bytes"
	"errors"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

// ErrNotEnoughData is returned when fewer than two entries exist in the
// requested window; a line chart needs at least two points.
var ErrNotEnoughData = errors.New("not enough entries to draw a chart")

// MetricsChart renders mood, energy and anxiety as lines over time and
// returns the PNG bytes. Entries may arrive newest first; the chart is drawn
// chronologically.
func MetricsChart(entries []internal.Entry, title string) ([]byte, error) {
	if len(entries) < 2 {
		return nil, ErrNotEnoughData
	}
	ordered := chronological(entries)

	xs := make([]time.Time, 0, len(ordered))
	mood := make([]float64, 0, len(ordered))
	energy := make([]float64, 0, len(ordered))
	anxiety := make([]float64, 0, len(ordered))
	for _, e := range ordered {
		d, err := time.Parse(internal.DateFormat, e.Date)
		if err != nil {
			continue
		}
		xs = append(xs, d)
		mood = append(mood, float64(e.Mood))
		energy = append(energy, float64(e.Energy))
		anxiety = append(anxiety, float64(e.Anxiety))
	}
	if len(xs) < 2 {
		return nil, ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 450,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 10.5},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Mood",
				XValues: xs,
				YValues: mood,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("2ecc71"), StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Energy",
				XValues: xs,
				YValues: energy,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("f39c12"), StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Anxiety",
				XValues: xs,
				YValues: anxiety,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("e74c3c"), StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SleepChart renders sleep hours as bars, one per day.
func SleepChart(entries []internal.Entry, title string) ([]byte, error) {
	if len(entries) < 2 {
		return nil, ErrNotEnoughData
	}
	ordered := chronological(entries)

	bars := make([]chart.Value, 0, len(ordered))
	for _, e := range ordered {
		// Labels show month-day only to keep the axis readable.
		label := e.Date
		if d, err := time.Parse(internal.DateFormat, e.Date); err == nil {
			label = d.Format("01-02")
		}
		bars = append(bars, chart.Value{
			Value: e.SleepHours,
			Label: label,
			Style: chart.Style{FillColor: drawing.ColorFromHex("3498db"), StrokeColor: drawing.ColorFromHex("3498db")},
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   450,
		BarWidth: 30,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 12.5},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chronological(entries []internal.Entry) []internal.Entry {
	out := make([]internal.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
