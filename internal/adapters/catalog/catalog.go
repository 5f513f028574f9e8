// Package catalog carga el catálogo inicial de medicamentos y sets desde YAML.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/domain/sets"

	"gopkg.in/yaml.v3"
)

type File struct {
	Medications []MedicationEntry `yaml:"medications"`
	Sets        []SetEntry        `yaml:"sets"`
}

type MedicationEntry struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Genre        string   `yaml:"genre"`
	DosageAmount string   `yaml:"dosageAmount"`
	DosageTiming []string `yaml:"dosageTiming"`
	Effects      string   `yaml:"effects"`
	Precautions  string   `yaml:"precautions"`
}

type SetEntry struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	MedicationIDs []string `yaml:"medicationIds"`
}

func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(b)
}

// Parse valida el catálogo completo antes de devolverlo: IDs y nombres
// únicos, categorías conocidas y sets que solo referencian medicamentos del archivo.
func Parse(b []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("decode catalog: %w", err)
	}

	ids := make(map[string]struct{}, len(f.Medications))
	var errs []error
	for i, m := range f.Medications {
		id := strings.TrimSpace(m.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("medications[%d]: id is required", i))
		case strings.TrimSpace(m.Name) == "":
			errs = append(errs, fmt.Errorf("medications[%d] %s: name is required", i, id))
		case strings.TrimSpace(m.DosageAmount) == "":
			errs = append(errs, fmt.Errorf("medications[%d] %s: dosageAmount is required", i, id))
		case !dosage.IsKnownGenre(dosage.NormalizeGenre(m.Genre)):
			errs = append(errs, fmt.Errorf("medications[%d] %s: unknown genre %q", i, id, m.Genre))
		}
		if _, dup := ids[id]; dup && id != "" {
			errs = append(errs, fmt.Errorf("medications[%d]: duplicate id %s", i, id))
		}
		ids[id] = struct{}{}
	}

	names := make(map[string]struct{}, len(f.Sets))
	for i, s := range f.Sets {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("sets[%d]: name is required", i))
		}
		if _, dup := names[name]; dup {
			errs = append(errs, fmt.Errorf("sets[%d]: duplicate name %s", i, name))
		}
		names[name] = struct{}{}
		for _, id := range s.MedicationIDs {
			if _, ok := ids[strings.TrimSpace(id)]; !ok {
				errs = append(errs, fmt.Errorf("sets[%d] %s: unknown medication %s", i, name, id))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return File{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return f, nil
}

// SeedIfEmpty siembra el catálogo solo si no hay medicamentos cargados. Con
// Postgres evita duplicar filas en cada arranque y deja los IDs del archivo,
// que son los que usan las reglas de unidades.
func SeedIfEmpty(ctx context.Context, f File, meds medications.Repository, setRepo sets.Repository, now time.Time) (bool, error) {
	existing, err := meds.List(ctx)
	if err != nil {
		return false, fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, Seed(ctx, f, meds, setRepo, now)
}

// Seed inserta el catálogo en los repositorios tal cual, conservando los IDs
// del archivo (las reglas de unidades los referencian).
func Seed(ctx context.Context, f File, meds medications.Repository, setRepo sets.Repository, now time.Time) error {
	for _, e := range f.Medications {
		m := medications.Medication{
			ID:           strings.TrimSpace(e.ID),
			Name:         strings.TrimSpace(e.Name),
			Effects:      strings.TrimSpace(e.Effects),
			Precautions:  strings.TrimSpace(e.Precautions),
			DosageAmount: strings.TrimSpace(e.DosageAmount),
			DosageTiming: dosage.TimingList(e.DosageTiming).Known(),
			Genre:        dosage.NormalizeGenre(e.Genre),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := meds.Create(ctx, m); err != nil {
			return fmt.Errorf("seed medication %s: %w", m.ID, err)
		}
	}

	for _, e := range f.Sets {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = "set-" + strings.TrimSpace(e.Name)
		}
		memberIDs := make([]string, 0, len(e.MedicationIDs))
		for _, mid := range e.MedicationIDs {
			memberIDs = append(memberIDs, strings.TrimSpace(mid))
		}
		s := sets.Set{
			ID:            id,
			Name:          strings.TrimSpace(e.Name),
			MedicationIDs: sets.MergeMembers(nil, memberIDs),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := setRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("seed set %s: %w", s.Name, err)
		}
	}
	return nil
}
