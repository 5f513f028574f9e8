package medications

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinic-medications/internal/domain/dosage"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Effects      string
	Precautions  string
	DosageAmount string
	DosageTiming dosage.TimingList
	Genre        dosage.Genre
}

// PatchInput usa punteros: nil = no tocar.
type PatchInput struct {
	Name         *string
	Effects      *string
	Precautions  *string
	DosageAmount *string
	DosageTiming *dosage.TimingList
	Genre        *dosage.Genre
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, error) {
	m, err := normalize(Medication{
		Name:         in.Name,
		Effects:      in.Effects,
		Precautions:  in.Precautions,
		DosageAmount: in.DosageAmount,
		DosageTiming: in.DosageTiming,
		Genre:        in.Genre,
	})
	if err != nil {
		return Medication{}, err
	}

	now := s.now()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, fmt.Errorf("create medication: %w", err)
	}
	return m, nil
}

// Replace reemplaza todos los campos editables (PUT).
func (s *Service) Replace(ctx context.Context, id string, in CreateInput) (Medication, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	next, err := normalize(Medication{
		ID:           current.ID,
		Name:         in.Name,
		Effects:      in.Effects,
		Precautions:  in.Precautions,
		DosageAmount: in.DosageAmount,
		DosageTiming: in.DosageTiming,
		Genre:        in.Genre,
		CreatedAt:    current.CreatedAt,
	})
	if err != nil {
		return Medication{}, err
	}
	return s.save(ctx, next)
}

// Patch aplica solo los campos presentes (PATCH), p. ej. cambiar la categoría.
func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (Medication, error) {
	next, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Effects != nil {
		next.Effects = *in.Effects
	}
	if in.Precautions != nil {
		next.Precautions = *in.Precautions
	}
	if in.DosageAmount != nil {
		next.DosageAmount = *in.DosageAmount
	}
	if in.DosageTiming != nil {
		next.DosageTiming = *in.DosageTiming
	}
	if in.Genre != nil {
		next.Genre = *in.Genre
	}

	next, err = normalize(next)
	if err != nil {
		return Medication{}, err
	}
	return s.save(ctx, next)
}

func (s *Service) save(ctx context.Context, m Medication) (Medication, error) {
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Medication{}, err
		}
		return Medication{}, fmt.Errorf("update medication %s: %w", m.ID, err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve el catálogo ordenado por nombre.
func (s *Service) List(ctx context.Context) ([]Medication, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// GroupByGenre agrupa el catálogo según GenreOrder; las categorías que no
// están en la lista van al final, ordenadas por nombre.
func (s *Service) GroupByGenre(ctx context.Context) ([]GenreGroup, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byGenre := map[dosage.Genre][]Medication{}
	for _, m := range items {
		byGenre[m.Genre] = append(byGenre[m.Genre], m)
	}

	genres := make([]dosage.Genre, 0, len(byGenre))
	for g := range byGenre {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		return genreLess(genres[i], genres[j])
	})

	out := make([]GenreGroup, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreGroup{Genre: g, Medications: byGenre[g]})
	}
	return out, nil
}

func genreLess(a, b dosage.Genre) bool {
	ia, ib := genreIndex(a), genreIndex(b)
	switch {
	case ia == -1 && ib == -1:
		return a < b
	case ia == -1:
		return false
	case ib == -1:
		return true
	default:
		return ia < ib
	}
}

func genreIndex(g dosage.Genre) int {
	for i, known := range GenreOrder {
		if g == known {
			return i
		}
	}
	return -1
}

// normalize recorta campos, valida la categoría y descarta etiquetas fuera del vocabulario.
func normalize(m Medication) (Medication, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Effects = strings.TrimSpace(m.Effects)
	m.Precautions = strings.TrimSpace(m.Precautions)
	m.DosageAmount = strings.TrimSpace(m.DosageAmount)
	m.Genre = dosage.NormalizeGenre(string(m.Genre))
	m.DosageTiming = m.DosageTiming.Known()

	if m.Name == "" {
		return Medication{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if m.DosageAmount == "" {
		return Medication{}, fmt.Errorf("%w: dosageAmount is required", ErrInvalidInput)
	}
	if !dosage.IsKnownGenre(m.Genre) {
		return Medication{}, fmt.Errorf("%w: unknown genre %q", ErrInvalidInput, m.Genre)
	}
	return m, nil
}
