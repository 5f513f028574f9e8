package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/platform/logger"
	"clinic-medications/internal/platform/metrics"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

// MissingError lista los IDs seleccionados que no existen en el catálogo.
type MissingError struct {
	IDs []string
}

func (e *MissingError) Error() string {
	return "medications not found: " + strings.Join(e.IDs, ", ")
}

func (e *MissingError) Unwrap() error { return ErrNotFound }

type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

// DaysUnits devuelve la unidad de días configurada para un medicamento, si la hay.
type DaysUnits interface {
	UnitFor(medicationID string) (string, bool)
}

// lookupConcurrency limita las búsquedas en paralelo contra el repositorio.
const lookupConcurrency = 8

type Service struct {
	meds   MedicationLookup
	units  DaysUnits
	clinic Clinic
	log    logger.Logger
	now    func() time.Time
}

func NewService(meds MedicationLookup, units DaysUnits, clinic Clinic, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		meds:   meds,
		units:  units,
		clinic: clinic,
		log:    log,
		now:    time.Now,
	}
}

// Build arma la hoja para la selección. El orden de las filas es el de
// req.Items; si falta algún medicamento no se arma nada.
func (s *Service) Build(ctx context.Context, req Request) (Sheet, error) {
	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return Sheet{}, fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return Sheet{}, fmt.Errorf("%w: items is required", ErrInvalidInput)
	}

	meds, err := s.resolve(ctx, req.Items)
	if err != nil {
		return Sheet{}, err
	}

	rows := make([]Row, 0, len(meds))
	for i, m := range meds {
		s.logDegradations(m)
		sel := req.Items[i]
		rows = append(rows, Row{
			Medication: m,
			Layout:     dosage.Build(m.Dosage(), normalizeDays(sel.Days), s.unitFor(sel)),
		})
	}
	metrics.LayoutsBuilt.Add(float64(len(rows)))

	at := req.PrescribedAt
	if at.IsZero() {
		at = s.now()
	}

	return Sheet{
		Title:        fmt.Sprintf("%s様に本日処方する薬の説明書です", name),
		PatientName:  name,
		PrescribedAt: at,
		Columns:      append([]string(nil), Columns...),
		Rows:         rows,
		Clinic:       s.clinic,
	}, nil
}

// resolve busca los medicamentos en paralelo y los devuelve en el orden pedido.
func (s *Service) resolve(ctx context.Context, items []Selection) ([]medications.Medication, error) {
	out := make([]medications.Medication, len(items))

	var (
		mu      sync.Mutex
		missing []string
	)

	ids := make([]string, len(items))
	for i, sel := range items {
		ids[i] = strings.TrimSpace(sel.MedicationID)
		if ids[i] == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrInvalidInput, i)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			m, err := s.meds.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, medications.ErrNotFound) {
					mu.Lock()
					missing = append(missing, id)
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("resolve medication %s: %w", id, err)
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(missing) > 0 {
		return nil, &MissingError{IDs: inRequestOrder(items, missing)}
	}
	return out, nil
}

// unitFor aplica la prioridad: unidad elegida, regla por medicamento, 日分.
func (s *Service) unitFor(sel Selection) string {
	if u := strings.TrimSpace(sel.Unit); u != "" {
		return u
	}
	if s.units != nil {
		if u, ok := s.units.UnitFor(strings.TrimSpace(sel.MedicationID)); ok {
			return u
		}
	}
	return dosage.DefaultDaysUnit
}

func (s *Service) logDegradations(m medications.Medication) {
	if !dosage.IsKnownGenre(m.Genre) {
		s.log.Debug("unknown genre, using tablet unit", map[string]any{
			"medication_id": m.ID,
			"genre":         string(m.Genre),
		})
	}
	if unknown := m.DosageTiming.Unknown(); len(unknown) > 0 {
		s.log.Debug("timing tags outside vocabulary ignored", map[string]any{
			"medication_id": m.ID,
			"tags":          []string(unknown),
		})
	}
}

func normalizeDays(days int) int {
	if days <= 0 {
		return 1
	}
	return days
}

func inRequestOrder(items []Selection, ids []string) []string {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, sel := range items {
		id := strings.TrimSpace(sel.MedicationID)
		if _, ok := want[id]; ok {
			out = append(out, id)
			delete(want, id)
		}
	}
	return out
}
