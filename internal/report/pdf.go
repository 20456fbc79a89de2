package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/analytics"
)

// PDF builds a printable journal report: summary block first, then one table
// row per entry, chronological.
func PDF(entries []internal.Entry, username string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Well-being Journal Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("User: %s", username))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	avg := analytics.Means(entries)
	streak := analytics.Streak(analytics.EntryDates(entries), time.Now())
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Summary (%d entries)", len(entries)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Average mood: %.1f/10   energy: %.1f/10   anxiety: %.1f/10   sleep: %.1f h",
		avg.Mood, avg.Energy, avg.Anxiety, avg.Sleep))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Current streak: %d day(s)", streak))
	pdf.Ln(12)

	headers := []string{"Date", "Mood", "Energy", "Anxiety", "Sleep", "Tags", "Note"}
	widths := []float64{24, 14, 16, 18, 14, 40, 64}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, e := range chronological(entries) {
		note := e.Note
		if len(note) > 45 {
			note = note[:42] + "..."
		}
		cells := []string{
			e.Date,
			fmt.Sprintf("%d", e.Mood),
			fmt.Sprintf("%d", e.Energy),
			fmt.Sprintf("%d", e.Anxiety),
			fmt.Sprintf("%.1f", e.SleepHours),
			strings.Join(e.Tags, ", "),
			note,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
