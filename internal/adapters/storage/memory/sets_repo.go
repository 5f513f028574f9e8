package memory

import (
	"context"
	"errors"
	"strings"

	"clinic-medications/internal/domain/sets"
)

// setRepo indexa por nombre: es la clave de las rutas y debe ser única.
type setRepo struct {
	rows *table[sets.Set]
}

func NewSetRepo() sets.Repository {
	return &setRepo{rows: newTable(copySet, func(a, b sets.Set) int {
		return strings.Compare(a.Name, b.Name)
	})}
}

func (r *setRepo) Create(_ context.Context, s sets.Set) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("set id required")
	}
	if !r.rows.insert(s.Name, s) {
		return sets.ErrConflict
	}
	return nil
}

func (r *setRepo) Update(_ context.Context, s sets.Set) error {
	if !r.rows.replace(s.Name, s) {
		return sets.ErrNotFound
	}
	return nil
}

func (r *setRepo) Delete(_ context.Context, name string) error {
	if !r.rows.remove(name) {
		return sets.ErrNotFound
	}
	return nil
}

func (r *setRepo) GetByName(_ context.Context, name string) (sets.Set, error) {
	s, ok := r.rows.get(name)
	if !ok {
		return sets.Set{}, sets.ErrNotFound
	}
	return s, nil
}

func (r *setRepo) List(_ context.Context) ([]sets.Set, error) {
	return r.rows.list(), nil
}

func copySet(s sets.Set) sets.Set {
	s.MedicationIDs = append([]string(nil), s.MedicationIDs...)
	return s
}
