package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-medications/internal/domain/dosage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(_ context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(_ context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) List(_ context.Context) ([]Medication, error) {
	out := make([]Medication, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	fixed := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestCreate_NormalizesAndDropsUnknownTags(t *testing.T) {
	svc, repo := newTestService()

	m, err := svc.Create(context.Background(), CreateInput{
		Name:         "  ロキソニン ",
		DosageAmount: "1",
		DosageTiming: dosage.TimingList{"朝食後", "宇宙時", "朝食後", "１２時間後"},
		Genre:        "解熱鎮痛",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "ロキソニン", m.Name)
	assert.Equal(t, dosage.TimingList{"朝食後", "12時間後"}, m.DosageTiming)
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
	assert.Contains(t, repo.byID, m.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{DosageAmount: "1", Genre: dosage.GenreOther}},
		{"missing amount", CreateInput{Name: "x", Genre: dosage.GenreOther}},
		{"unknown genre", CreateInput{Name: "x", DosageAmount: "1", Genre: "魔法"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPatch_OnlyTouchesSentFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{Name: "五苓散料", DosageAmount: "1", Genre: dosage.GenreOther, Effects: "むくみ"})
	require.NoError(t, err)

	genre := dosage.GenreKampo
	patched, err := svc.Patch(ctx, m.ID, PatchInput{Genre: &genre})
	require.NoError(t, err)
	assert.Equal(t, dosage.GenreKampo, patched.Genre)
	assert.Equal(t, "むくみ", patched.Effects)
	assert.Equal(t, m.CreatedAt, patched.CreatedAt)

	bad := dosage.Genre("魔法")
	_, err = svc.Patch(ctx, m.ID, PatchInput{Genre: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Patch(ctx, "missing", PatchInput{Genre: &genre})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplace(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{Name: "A", DosageAmount: "1", Genre: dosage.GenreOther, Effects: "e"})
	require.NoError(t, err)

	r, err := svc.Replace(ctx, m.ID, CreateInput{Name: "B", DosageAmount: "2", Genre: dosage.GenreVitamin})
	require.NoError(t, err)
	assert.Equal(t, m.ID, r.ID)
	assert.Equal(t, "B", r.Name)
	assert.Empty(t, r.Effects)

	_, err = svc.Replace(ctx, "missing", CreateInput{Name: "B", DosageAmount: "2", Genre: dosage.GenreVitamin})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupByGenre_DisplayOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, in := range []CreateInput{
		{Name: "湿布", DosageAmount: "1", Genre: dosage.GenreTopical},
		{Name: "ビタミンC", DosageAmount: "1", Genre: dosage.GenreVitamin},
		{Name: "カロナール", DosageAmount: "1", Genre: dosage.GenreAntipyretic},
		{Name: "アセトアミノフェン", DosageAmount: "1", Genre: dosage.GenreAntipyretic},
		{Name: "イミグラン", DosageAmount: "1", Genre: dosage.GenreHeadache},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	groups, err := svc.GroupByGenre(ctx)
	require.NoError(t, err)

	genres := make([]dosage.Genre, 0, len(groups))
	for _, g := range groups {
		genres = append(genres, g.Genre)
	}
	assert.Equal(t, []dosage.Genre{
		dosage.GenreHeadache,
		dosage.GenreAntipyretic,
		dosage.GenreVitamin,
		dosage.GenreTopical,
	}, genres)

	require.Len(t, groups[1].Medications, 2)
	assert.Equal(t, "アセトアミノフェン", groups[1].Medications[0].Name)
}

func TestDeleteAndGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateInput{Name: "A", DosageAmount: "1", Genre: dosage.GenreOther})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	_, err = svc.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
