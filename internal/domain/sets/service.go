package sets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-medications/internal/domain/medications"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("set not found")
	ErrConflict     = errors.New("set already exists")
)

// MedicationLookup es lo único que sets necesita del catálogo.
type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo Repository
	meds MedicationLookup
	now  func() time.Time
}

func NewService(repo Repository, meds MedicationLookup) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Set, error) {
	return s.repo.List(ctx)
}

// Get devuelve el set con sus medicamentos. Los IDs huérfanos (medicamento
// eliminado) se omiten.
func (s *Service) Get(ctx context.Context, name string) (Detail, error) {
	set, err := s.getByName(ctx, name)
	if err != nil {
		return Detail{}, err
	}

	out := Detail{Set: set, Medications: make([]medications.Medication, 0, len(set.MedicationIDs))}
	for _, id := range set.MedicationIDs {
		m, err := s.meds.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, medications.ErrNotFound) {
				continue
			}
			return Detail{}, fmt.Errorf("resolve medication %s: %w", id, err)
		}
		out.Medications = append(out.Medications, m)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, name string, medicationIDs []string) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Set{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return Set{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return Set{}, err
	}

	ids, err := s.checkMedications(ctx, medicationIDs)
	if err != nil {
		return Set{}, err
	}

	now := s.now()
	set := Set{
		ID:            uuid.NewString(),
		Name:          name,
		MedicationIDs: MergeMembers(nil, ids),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, set); err != nil {
		return Set{}, fmt.Errorf("create set: %w", err)
	}
	return set, nil
}

// AddMedications agrega miembros; los que ya estaban se ignoran.
func (s *Service) AddMedications(ctx context.Context, name string, medicationIDs []string) (Set, error) {
	set, err := s.getByName(ctx, name)
	if err != nil {
		return Set{}, err
	}
	if len(medicationIDs) == 0 {
		return Set{}, fmt.Errorf("%w: medicationIds is required", ErrInvalidInput)
	}

	ids, err := s.checkMedications(ctx, medicationIDs)
	if err != nil {
		return Set{}, err
	}

	set.MedicationIDs = MergeMembers(set.MedicationIDs, ids)
	return s.save(ctx, set)
}

// RemoveMedications quita miembros; los que no estaban se ignoran.
func (s *Service) RemoveMedications(ctx context.Context, name string, medicationIDs []string) (Set, error) {
	set, err := s.getByName(ctx, name)
	if err != nil {
		return Set{}, err
	}
	if len(medicationIDs) == 0 {
		return Set{}, fmt.Errorf("%w: medicationIds is required", ErrInvalidInput)
	}

	drop := make(map[string]struct{}, len(medicationIDs))
	for _, id := range medicationIDs {
		drop[strings.TrimSpace(id)] = struct{}{}
	}

	kept := make([]string, 0, len(set.MedicationIDs))
	for _, id := range set.MedicationIDs {
		if _, ok := drop[id]; ok {
			continue
		}
		kept = append(kept, id)
	}
	set.MedicationIDs = kept
	return s.save(ctx, set)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, name)
}

func (s *Service) getByName(ctx context.Context, name string) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Set{}, ErrInvalidInput
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) save(ctx context.Context, set Set) (Set, error) {
	set.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, set); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Set{}, err
		}
		return Set{}, fmt.Errorf("update set %s: %w", set.Name, err)
	}
	return set, nil
}

// checkMedications valida que todos los IDs existan en el catálogo.
func (s *Service) checkMedications(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: empty medication id", ErrInvalidInput)
		}
		if _, err := s.meds.GetByID(ctx, id); err != nil {
			if errors.Is(err, medications.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown medication %s", ErrInvalidInput, id)
			}
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// MergeMembers agrega add a current sin repetir IDs, conservando el orden de inserción.
func MergeMembers(current, add []string) []string {
	seen := make(map[string]struct{}, len(current)+len(add))
	out := make([]string, 0, len(current)+len(add))
	for _, id := range append(append([]string(nil), current...), add...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
