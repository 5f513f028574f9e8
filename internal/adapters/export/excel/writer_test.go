package excel

import (
	"bytes"
	"testing"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/prescriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func cellText(t *testing.T, f *excelize.File, col, row int) string {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	v, err := f.GetCellValue(SheetName, cell)
	require.NoError(t, err)
	return v
}

func sampleSheet() prescriptions.Sheet {
	loxo := medications.Medication{
		ID: "loxo", Name: "ロキソニン", DosageAmount: "1", Genre: dosage.GenreAntipyretic,
		DosageTiming: dosage.TimingList{"毎食後"}, Effects: "痛み止め", Precautions: "胃の弱い方",
	}
	kampo := medications.Medication{
		ID: "goreisan", Name: "五苓散料", DosageAmount: "1", Genre: dosage.GenreKampo,
		DosageTiming: dosage.TimingList{"症状出現時", "12時間後"},
	}
	return prescriptions.Sheet{
		Title:        "山田様に本日処方する薬の説明書です",
		PatientName:  "山田",
		PrescribedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Columns:      prescriptions.Columns,
		Rows: []prescriptions.Row{
			{Medication: loxo, Layout: dosage.Build(loxo.Dosage(), 5, "日分")},
			{Medication: kampo, Layout: dosage.Build(kampo.Dosage(), 2, "回分")},
		},
		Clinic: prescriptions.Clinic{Name: "テストクリニック", Address: "福岡市", Phone: "TEL000", Notice: "注意してください"},
	}
}

func TestWriteSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteSheet(&buf, sampleSheet()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "山田様に本日処方する薬の説明書です", cellText(t, f, colName, 1))
	assert.Equal(t, "名前 形 色", cellText(t, f, colName, 3))
	assert.Equal(t, "飲み方", cellText(t, f, colGridFirst, 3))
	assert.Equal(t, "注意事項(注意が必要な方)", cellText(t, f, colNotes, 3))

	// fila normal: 6 franjas, 毎食後 llena 朝/昼/夕
	assert.Equal(t, "ロキソニン", cellText(t, f, colName, 4))
	assert.Equal(t, "起床後", cellText(t, f, colGridFirst, 4))
	assert.Equal(t, "", cellText(t, f, colGridFirst, 5))
	assert.Equal(t, "1", cellText(t, f, colGridFirst+1, 5))
	assert.Equal(t, "1", cellText(t, f, colGridFirst+3, 5))
	assert.Equal(t, "1回 1錠\n毎食後", cellText(t, f, colSummary, 4))
	assert.Equal(t, "5日分", cellText(t, f, colDays, 4))
	assert.Equal(t, "胃の弱い方", cellText(t, f, colNotes, 4))

	// fila especial: 2 franjas
	assert.Equal(t, "症状出現時", cellText(t, f, colGridFirst, 6))
	assert.Equal(t, "12時間後", cellText(t, f, colGridFirst+1, 6))
	assert.Equal(t, "", cellText(t, f, colGridFirst+2, 6))
	assert.Equal(t, "1", cellText(t, f, colGridFirst+1, 7))
	assert.Equal(t, "2回分", cellText(t, f, colDays, 6))

	// pie
	assert.Equal(t, prescriptions.PrescribedLabel, cellText(t, f, colName, 9))
	assert.Equal(t, "2024/4/1", cellText(t, f, colGridFirst, 9))
	assert.Equal(t, "注意してください", cellText(t, f, colName, 11))
	assert.Equal(t, "テストクリニック", cellText(t, f, lastCol, 13))
	assert.Equal(t, "TEL000", cellText(t, f, lastCol, 15))
}

func TestWriteSheet_HeaderBorders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteSheet(&buf, sampleSheet()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	borderTypes := func(col, row int) []string {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		id, err := f.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		st, err := f.GetStyle(id)
		require.NoError(t, err)
		out := make([]string, 0, len(st.Border))
		for _, b := range st.Border {
			out = append(out, b.Type)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"right", "bottom"}, borderTypes(colGridFirst, 4))
	assert.Empty(t, borderTypes(colGridFirst+gridWidth-1, 4))
	assert.Empty(t, borderTypes(colGridFirst+1, 6))
}

func TestWriteLayouts(t *testing.T) {
	layouts := dosage.BuildAll([]dosage.Entry{
		{Medication: dosage.Medication{ID: "a", DosageAmount: "2", Genre: dosage.GenreOther, DosageTiming: dosage.TimingList{"就寝前"}}, Days: 7, Unit: "日分"},
	})

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteLayouts(&buf, layouts))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "a", cellText(t, f, colName, 1))
	assert.Equal(t, "就寝前", cellText(t, f, colGridFirst+4, 1))
	assert.Equal(t, "2", cellText(t, f, colGridFirst+4, 2))
	assert.Equal(t, "7日分", cellText(t, f, colDays, 1))
}
