package prescriptions_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/prescriptions"
	"clinic-medications/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup map[string]medications.Medication

func (f fakeLookup) GetByID(_ context.Context, id string) (medications.Medication, error) {
	if id == "boom" {
		return medications.Medication{}, errors.New("db down")
	}
	m, ok := f[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

type fakeUnits map[string]string

func (f fakeUnits) UnitFor(id string) (string, bool) {
	u, ok := f[id]
	return u, ok
}

func catalog() fakeLookup {
	return fakeLookup{
		"loxo": {ID: "loxo", Name: "ロキソニン", DosageAmount: "1", Genre: dosage.GenreAntipyretic,
			DosageTiming: dosage.TimingList{"毎食後"}},
		"goreisan": {ID: "goreisan", Name: "五苓散料", DosageAmount: "1", Genre: dosage.GenreKampo,
			DosageTiming: dosage.TimingList{"症状出現時", "12時間後"}},
		"rinderon": {ID: "rinderon", Name: "リンデロン", DosageAmount: "1", Genre: dosage.GenreTopical,
			DosageTiming: dosage.TimingList{"指示通り"}},
	}
}

var clinic = prescriptions.Clinic{Name: "テストクリニック", Address: "福岡市", Phone: "TEL000", Notice: "注意"}

func TestBuild_RowsFollowRequestOrder(t *testing.T) {
	svc := prescriptions.NewService(catalog(), fakeUnits{"goreisan": "回分"}, clinic, nil)
	at := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	sheet, err := svc.Build(context.Background(), prescriptions.Request{
		PatientName:  " 山田 ",
		PrescribedAt: at,
		Items: []prescriptions.Selection{
			{MedicationID: "rinderon", Days: 5},
			{MedicationID: "goreisan", Days: 2},
			{MedicationID: "loxo", Days: 0, Unit: "回分"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "山田様に本日処方する薬の説明書です", sheet.Title)
	assert.Equal(t, "2024/4/1", sheet.PrescribedDate())
	assert.Equal(t, prescriptions.Columns, sheet.Columns)
	assert.Equal(t, clinic, sheet.Clinic)

	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "rinderon", sheet.Rows[0].Layout.MedicationID)
	assert.Equal(t, "5日分", sheet.Rows[0].Layout.DaysText)
	assert.Equal(t, "1回適量", sheet.Rows[0].Layout.DosageSummary)

	assert.Equal(t, dosage.ScheduleSpecial, sheet.Rows[1].Layout.Kind)
	assert.Equal(t, "2回分", sheet.Rows[1].Layout.DaysText)
	assert.Equal(t, "1回 1包", sheet.Rows[1].Layout.DosageSummary)

	// unidad explícita gana; días <= 0 cuenta como 1
	assert.Equal(t, "1回分", sheet.Rows[2].Layout.DaysText)
	assert.Equal(t, "ロキソニン", sheet.Rows[2].Medication.Name)
}

func TestBuild_DefaultsPrescribedAtToNow(t *testing.T) {
	svc := prescriptions.NewService(catalog(), nil, clinic, nil)

	sheet, err := svc.Build(context.Background(), prescriptions.Request{
		PatientName: "山田",
		Items:       []prescriptions.Selection{{MedicationID: "loxo", Days: 3}},
	})
	require.NoError(t, err)
	assert.False(t, sheet.PrescribedAt.IsZero())
	assert.Equal(t, "3日分", sheet.Rows[0].Layout.DaysText)
}

func TestBuild_MissingMedications(t *testing.T) {
	svc := prescriptions.NewService(catalog(), nil, clinic, nil)

	_, err := svc.Build(context.Background(), prescriptions.Request{
		PatientName: "山田",
		Items: []prescriptions.Selection{
			{MedicationID: "nope-2", Days: 1},
			{MedicationID: "loxo", Days: 1},
			{MedicationID: "nope-1", Days: 1},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, prescriptions.ErrNotFound)

	var missing *prescriptions.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"nope-2", "nope-1"}, missing.IDs)
}

func TestBuild_InvalidInput(t *testing.T) {
	svc := prescriptions.NewService(catalog(), nil, clinic, nil)

	tests := []struct {
		name string
		req  prescriptions.Request
	}{
		{"no patient", prescriptions.Request{Items: []prescriptions.Selection{{MedicationID: "loxo"}}}},
		{"no items", prescriptions.Request{PatientName: "山田"}},
		{"blank id", prescriptions.Request{PatientName: "山田", Items: []prescriptions.Selection{{MedicationID: " "}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Build(context.Background(), tt.req)
			assert.ErrorIs(t, err, prescriptions.ErrInvalidInput)
		})
	}
}

func TestBuild_LookupFailureIsNotMissing(t *testing.T) {
	svc := prescriptions.NewService(catalog(), nil, clinic, nil)

	_, err := svc.Build(context.Background(), prescriptions.Request{
		PatientName: "山田",
		Items:       []prescriptions.Selection{{MedicationID: "boom", Days: 1}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, prescriptions.ErrNotFound)
}

type countingLookup struct {
	fakeLookup
	calls atomic.Int32
}

func (c *countingLookup) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	c.calls.Add(1)
	return c.fakeLookup.GetByID(ctx, id)
}

func TestBuild_BlankIDStartsNoLookups(t *testing.T) {
	lookup := &countingLookup{fakeLookup: catalog()}
	svc := prescriptions.NewService(lookup, nil, clinic, nil)

	_, err := svc.Build(context.Background(), prescriptions.Request{
		PatientName: "山田",
		Items: []prescriptions.Selection{
			{MedicationID: "loxo", Days: 1},
			{MedicationID: "goreisan", Days: 1},
			{MedicationID: "", Days: 1},
		},
	})
	assert.ErrorIs(t, err, prescriptions.ErrInvalidInput)
	assert.Equal(t, int32(0), lookup.calls.Load())
}

func TestBuild_LogsOnlyTagsOutsideVocabulary(t *testing.T) {
	meds := fakeLookup{
		"dup": {ID: "dup", Name: "重複", DosageAmount: "1", Genre: dosage.GenreVitamin,
			DosageTiming: dosage.TimingList{"朝食後", "朝食後"}},
		"odd": {ID: "odd", Name: "不明", DosageAmount: "1", Genre: dosage.GenreVitamin,
			DosageTiming: dosage.TimingList{"朝食後", "食事中"}},
	}

	tests := []struct {
		id     string
		logged bool
	}{
		{"dup", false},
		{"odd", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})
			svc := prescriptions.NewService(meds, nil, clinic, log)

			_, err := svc.Build(context.Background(), prescriptions.Request{
				PatientName: "山田",
				Items:       []prescriptions.Selection{{MedicationID: tt.id, Days: 1}},
			})
			require.NoError(t, err)

			out := buf.String()
			assert.Equal(t, tt.logged, bytes.Contains(buf.Bytes(), []byte("timing tags outside vocabulary ignored")), out)
			if tt.logged {
				assert.Contains(t, out, "食事中")
				assert.NotContains(t, out, "朝食後")
			}
		})
	}
}
