package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/analytics"
)

const sheetName = "Entries"

// Excel builds an XLSX export with one row per entry plus an averages row.
func Excel(entries []internal.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Mood", "Energy", "Anxiety", "Sleep (h)", "Tags", "Note"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, e := range chronological(entries) {
		values := []interface{}{
			e.Date, e.Mood, e.Energy, e.Anxiety, e.SleepHours,
			strings.Join(e.Tags, ", "), e.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	if len(entries) > 0 {
		avg := analytics.Means(entries)
		row++
		summary := []interface{}{
			"Averages",
			fmt.Sprintf("%.1f", avg.Mood),
			fmt.Sprintf("%.1f", avg.Energy),
			fmt.Sprintf("%.1f", avg.Anxiety),
			fmt.Sprintf("%.1f", avg.Sleep),
		}
		for col, v := range summary {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
