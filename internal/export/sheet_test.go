package export

import (
	"bytes"
	"testing"

	"wisefido-carelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func f64(v float64) *float64 { return &v }

func TestGenerateDailySheet_WritesLinesAndVitals(t *testing.T) {
	reports := []models.SubjectReport{
		{
			Subject: models.Subject{ID: "u1", Name: "Taro"},
			Lines: []models.SummaryLine{
				{Category: models.CategoryHydration, Label: "水分補給", Text: "08:10 oral 120ml"},
				{Category: models.CategorySeizure, Label: "発作", Text: "09:00 強直 30秒\n13:00 欠神"},
			},
			Vitals: []models.VitalsEntry{
				{Timestamp: "2025-07-25T08:10", Temperature: f64(36.8), Pulse: f64(72), Systolic: f64(120), Diastolic: f64(80)},
			},
		},
		{Subject: models.Subject{ID: "u2", Name: "Hanako"}},
	}

	data, err := GenerateDailySheet("2025-07-25", reports)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{LogSheetName, VitalsSheetName}, f.GetSheetList())

	rows, err := f.GetRows(LogSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, LogSheetHeader, rows[0])
	assert.Equal(t, []string{"2025-07-25", "u1", "Taro", "水分補給", "08:10 oral 120ml"}, rows[1])
	assert.Equal(t, "09:00 強直 30秒\n13:00 欠神", rows[2][4])

	rows, err = f.GetRows(VitalsSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.GreaterOrEqual(t, len(rows[1]), 7)
	assert.Equal(t, []string{"2025-07-25", "Taro", "08:10", "36.8", "72"}, rows[1][:5])
	assert.Equal(t, "", rows[1][5])
	assert.Equal(t, "120/80", rows[1][6])
}

func TestGenerateDailySheet_EmptyReportsOnlyHeaders(t *testing.T) {
	data, err := GenerateDailySheet("2025-07-25", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LogSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, LogSheetHeader, rows[0])
}
