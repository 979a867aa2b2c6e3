package file_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"timeliness-series-service/internal/records/adapters/file"
	"timeliness-series-service/internal/records/core/ports"
)

const indonesianCSV = `tanggal_awal_minggu,kode,kabupaten,sex,jenis_wilayah,dosis,periode_covid,timely,untimely,total,ratio_timely
2020-02-24,1,Sleman,F,urban,dosis_1,before_covid,8,2,10,80.0
2020-02-24,2,Bantul,M,rural,booster,before_covid,1.0,3.0,4.0,25.0
2020-03-02,3,Bantul,M,rural,dosis_2,during_covid,5,5,10,50.0
,,,,,,,,,,
2020-03-02,1,Sleman,F,urban,dosis_2,during_covid,0,0,0,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_CSV_IndonesianHeaders(t *testing.T) {
	path := writeFile(t, "rekap_mingguan.csv", indonesianCSV)

	r, err := file.NewReader(path)
	require.NoError(t, err)

	recaps, err := r.ReadRecaps(context.Background(), ports.RecapFilter{Codes: []int{1, 2}})
	require.NoError(t, err)

	require.Len(t, recaps, 3)
	assert.Equal(t, "2020-02-24", recaps[0].WeekStart)
	assert.Equal(t, "Sleman", recaps[0].Region)
	assert.Equal(t, "urban", recaps[0].AreaType)
	assert.Equal(t, "dosis_1", recaps[0].DoseStage)
	assert.Equal(t, "before_covid", recaps[0].Regime)
	require.NotNil(t, recaps[0].Ratio)
	assert.InDelta(t, 80.0, *recaps[0].Ratio, 1e-9)

	assert.Equal(t, 2, recaps[1].Code)
	assert.Equal(t, int64(1), recaps[1].Timely)
	assert.Equal(t, int64(4), recaps[1].Total)

	assert.Equal(t, int64(0), recaps[2].Total)
	assert.Nil(t, recaps[2].Ratio)
}

func TestReader_CSV_NoFilterKeepsEveryCode(t *testing.T) {
	path := writeFile(t, "rekap.csv", indonesianCSV)

	r, err := file.NewReader(path)
	require.NoError(t, err)

	recaps, err := r.ReadRecaps(context.Background(), ports.RecapFilter{})
	require.NoError(t, err)
	assert.Len(t, recaps, 4)
}

func TestReader_CSV_MissingColumn(t *testing.T) {
	path := writeFile(t, "rekap.csv", "week_start,code,timely,total\n2020-01-06,1,1,2\n")

	r, err := file.NewReader(path)
	require.NoError(t, err)

	_, err = r.ReadRecaps(context.Background(), ports.RecapFilter{})
	assert.ErrorIs(t, err, file.ErrMissingColumn)
}

func TestReader_CSV_BadNumberReportsLine(t *testing.T) {
	path := writeFile(t, "rekap.csv", "week_start,code,regime,timely,untimely,total\n2020-01-06,1,before,1,1,2\n2020-01-13,1,before,x,1,2\n")

	r, err := file.NewReader(path)
	require.NoError(t, err)

	_, err = r.ReadRecaps(context.Background(), ports.RecapFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "timely")
}

func TestReader_CSV_BlankCountsWithoutRatio(t *testing.T) {
	path := writeFile(t, "rekap.csv", "week_start,code,regime,timely,untimely,total,ratio\n"+
		"2020-02-24,1,before_covid,8,2,10,80\n"+
		"2020-03-02,1,during_covid,,,,\n"+
		"2020-03-09,1,during_covid,,,,NaN\n")
	r, err := file.NewReader(path)
	require.NoError(t, err)

	recaps, err := r.ReadRecaps(context.Background(), ports.RecapFilter{})
	require.NoError(t, err)

	require.Len(t, recaps, 3)
	assert.False(t, recaps[0].MissingCounts)
	assert.True(t, recaps[1].MissingCounts)
	assert.True(t, recaps[2].MissingCounts)
	assert.Equal(t, "during_covid", recaps[1].Regime)
}

func TestReader_CSV_BlankCountsWithRatioRejected(t *testing.T) {
	path := writeFile(t, "rekap.csv", "week_start,code,regime,timely,untimely,total,ratio\n2020-03-02,1,during_covid,,,,50\n")
	r, err := file.NewReader(path)
	require.NoError(t, err)

	_, err = r.ReadRecaps(context.Background(), ports.RecapFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReader_CSV_FractionalCountRejected(t *testing.T) {
	path := writeFile(t, "rekap.csv", "week_start,code,regime,timely,untimely,total\n2020-01-06,1,before,1.5,1,2\n")

	r, err := file.NewReader(path)
	require.NoError(t, err)

	_, err = r.ReadRecaps(context.Background(), ports.RecapFilter{})
	assert.Error(t, err)
}

func TestReader_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rekap.xlsx")

	wb := excelize.NewFile()
	rows := [][]any{
		{"week_start", "code", "region", "sex", "area_type", "dose_stage", "regime", "timely", "untimely", "total", "ratio"},
		{"2021-01-04", 1, "Sleman", "F", "urban", "dose_3", "during_covid", 9, 1, 10, 90},
		{"2021-01-11", 2, "Sleman", "M", "urban", "booster", "during_covid", 3, 1, 4, ""},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	r, err := file.NewReader(path)
	require.NoError(t, err)

	recaps, err := r.ReadRecaps(context.Background(), ports.RecapFilter{Codes: []int{2}})
	require.NoError(t, err)

	require.Len(t, recaps, 1)
	assert.Equal(t, "2021-01-11", recaps[0].WeekStart)
	assert.Equal(t, "booster", recaps[0].DoseStage)
	assert.Equal(t, int64(3), recaps[0].Timely)
	assert.Nil(t, recaps[0].Ratio)
}

func TestNewReader_Errors(t *testing.T) {
	_, err := file.NewReader(writeFile(t, "rekap.json", "{}"))
	assert.ErrorIs(t, err, file.ErrUnsupportedFormat)

	_, err = file.NewReader(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
