package memory

import (
	"cmp"
	"context"
	"errors"
	"strings"

	"clinic-medications/internal/domain/medications"
)

var errMedicationExists = errors.New("medication already exists")

type medicationRepo struct {
	rows *table[medications.Medication]
}

// NewMedicationRepo lista igual que el repo de Postgres: created_at y después id.
func NewMedicationRepo() medications.Repository {
	return &medicationRepo{rows: newTable(copyMedication, compareMedications)}
}

func (r *medicationRepo) Create(_ context.Context, m medications.Medication) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if !r.rows.insert(m.ID, m) {
		return errMedicationExists
	}
	return nil
}

func (r *medicationRepo) Update(_ context.Context, m medications.Medication) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if !r.rows.replace(m.ID, m) {
		return medications.ErrNotFound
	}
	return nil
}

func (r *medicationRepo) Delete(_ context.Context, id string) error {
	if !r.rows.remove(id) {
		return medications.ErrNotFound
	}
	return nil
}

func (r *medicationRepo) GetByID(_ context.Context, id string) (medications.Medication, error) {
	m, ok := r.rows.get(id)
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) List(_ context.Context) ([]medications.Medication, error) {
	return r.rows.list(), nil
}

// copyMedication no comparte el slice de etiquetas con quien llama.
func copyMedication(m medications.Medication) medications.Medication {
	m.DosageTiming = append(m.DosageTiming[:0:0], m.DosageTiming...)
	return m
}

func compareMedications(a, b medications.Medication) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
