package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itgubeeva-pixel/carecloud/internal"
)

func sampleEntries() []internal.Entry {
	return []internal.Entry{
		{Date: "2024-03-10", Mood: 8, Energy: 7, Anxiety: 2, SleepHours: 8, Tags: []string{"sport"}, Note: "gym"},
		{Date: "2024-03-09", Mood: 5, Energy: 5, Anxiety: 5, SleepHours: 6.5, Tags: []string{"work", "stress"}},
		{Date: "2024-03-08", Mood: 6, Energy: 6, Anxiety: 3, SleepHours: 7},
	}
}

func TestMetricsChartProducesPNG(t *testing.T) {
	png, err := MetricsChart(sampleEntries(), "Last week")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "output must be a PNG")
}

func TestSleepChartProducesPNG(t *testing.T) {
	png, err := SleepChart(sampleEntries(), "Sleep")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestChartsNeedTwoEntries(t *testing.T) {
	one := sampleEntries()[:1]

	_, err := MetricsChart(one, "x")
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = SleepChart(one, "x")
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestPDFReport(t *testing.T) {
	out, err := PDF(sampleEntries(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF")
}

func TestExcelExport(t *testing.T) {
	out, err := Excel(sampleEntries())
	require.NoError(t, err)
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
}

func TestExcelExportEmpty(t *testing.T) {
	out, err := Excel(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestChronologicalReverses(t *testing.T) {
	ordered := chronological(sampleEntries())
	assert.Equal(t, "2024-03-08", ordered[0].Date)
	assert.Equal(t, "2024-03-10", ordered[2].Date)
}
