package sets_test

import (
	"context"
	"testing"

	"clinic-medications/internal/adapters/storage/memory"
	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/sets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sets.Service, *medications.Service, []string) {
	t.Helper()
	meds := medications.NewService(memory.NewMedicationRepo())

	ids := make([]string, 0, 3)
	for _, name := range []string{"ロキソニン", "ムコスタ", "葛根湯"} {
		m, err := meds.Create(context.Background(), medications.CreateInput{
			Name: name, DosageAmount: "1", Genre: dosage.GenreOther,
		})
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	return sets.NewService(memory.NewSetRepo(), meds), meds, ids
}

func TestCreateAndGet(t *testing.T) {
	svc, _, ids := setup(t)
	ctx := context.Background()

	s, err := svc.Create(ctx, " 風邪 ", []string{ids[1], ids[0], ids[1]})
	require.NoError(t, err)
	assert.Equal(t, "風邪", s.Name)
	assert.Equal(t, []string{ids[1], ids[0]}, s.MedicationIDs)

	d, err := svc.Get(ctx, "風邪")
	require.NoError(t, err)
	require.Len(t, d.Medications, 2)
	assert.Equal(t, "ムコスタ", d.Medications[0].Name)

	_, err = svc.Create(ctx, "風邪", nil)
	assert.ErrorIs(t, err, sets.ErrConflict)

	_, err = svc.Create(ctx, "", nil)
	assert.ErrorIs(t, err, sets.ErrInvalidInput)

	_, err = svc.Create(ctx, "頭痛", []string{"missing"})
	assert.ErrorIs(t, err, sets.ErrInvalidInput)
}

func TestAddAndRemoveMembers(t *testing.T) {
	svc, _, ids := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "風邪", []string{ids[0]})
	require.NoError(t, err)

	s, err := svc.AddMedications(ctx, "風邪", []string{ids[0], ids[2]})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[2]}, s.MedicationIDs)

	s, err = svc.RemoveMedications(ctx, "風邪", []string{ids[0], "not-a-member"})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2]}, s.MedicationIDs)

	_, err = svc.AddMedications(ctx, "風邪", []string{"missing"})
	assert.ErrorIs(t, err, sets.ErrInvalidInput)

	_, err = svc.AddMedications(ctx, "風邪", nil)
	assert.ErrorIs(t, err, sets.ErrInvalidInput)

	_, err = svc.AddMedications(ctx, "nope", []string{ids[0]})
	assert.ErrorIs(t, err, sets.ErrNotFound)
}

func TestGet_SkipsDeletedMedications(t *testing.T) {
	svc, meds, ids := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "風邪", ids)
	require.NoError(t, err)
	require.NoError(t, meds.Delete(ctx, ids[1]))

	d, err := svc.Get(ctx, "風邪")
	require.NoError(t, err)
	require.Len(t, d.Medications, 2)
	assert.Equal(t, ids[0], d.Medications[0].ID)
	assert.Equal(t, ids[2], d.Medications[1].ID)
}

func TestListAndDelete(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		_, err := svc.Create(ctx, name, nil)
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.ErrorIs(t, svc.Delete(ctx, "a"), sets.ErrNotFound)
}
