package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed default_days_units.yaml
var defaultDaysUnits []byte

type rulesFile struct {
	Rules []struct {
		MedicationID string `yaml:"medicationId"`
		Name         string `yaml:"name"` // solo informativo
		Unit         string `yaml:"unit"`
	} `yaml:"rules"`
}

// DaysUnits resuelve la unidad de días por ID de medicamento (回分 para
// algunos kampo). Es seguro para uso concurrente y se puede recargar en caliente.
type DaysUnits struct {
	mu    sync.RWMutex
	units map[string]string

	path string
	log  logger.Logger
}

// NewDaysUnits carga las reglas de path; con path vacío usa las reglas por defecto.
func NewDaysUnits(path string, log logger.Logger) (*DaysUnits, error) {
	if log == nil {
		log = logger.Nop()
	}
	d := &DaysUnits{path: path, log: log}

	data := defaultDaysUnits
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read days unit rules %s: %w", path, err)
		}
		data = b
	}

	units, err := parseRules(data)
	if err != nil {
		return nil, err
	}
	d.units = units
	return d, nil
}

func parseRules(b []byte) (map[string]string, error) {
	var f rulesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode days unit rules: %w", err)
	}
	out := make(map[string]string, len(f.Rules))
	for i, r := range f.Rules {
		id, unit := strings.TrimSpace(r.MedicationID), strings.TrimSpace(r.Unit)
		if id == "" || unit == "" {
			return nil, fmt.Errorf("days unit rules[%d]: medicationId and unit are required", i)
		}
		out[id] = unit
	}
	return out, nil
}

func (d *DaysUnits) UnitFor(medicationID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.units[medicationID]
	return u, ok
}

// MedicationIDs devuelve los IDs con regla, ordenados.
func (d *DaysUnits) MedicationIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.units))
	for id := range d.units {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Reload vuelve a leer el archivo. Si el archivo nuevo es inválido se
// conservan las reglas anteriores.
func (d *DaysUnits) Reload() error {
	if d.path == "" {
		return nil
	}
	b, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read days unit rules %s: %w", d.path, err)
	}
	units, err := parseRules(b)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.units = units
	d.mu.Unlock()

	d.log.Info("days unit rules reloaded", map[string]any{"path": d.path, "rules": len(units)})
	return nil
}

// Watch recarga las reglas cuando cambia el archivo, hasta que ctx termine.
// Se observa el directorio: los editores suelen reemplazar el archivo con un rename.
func (d *DaysUnits) Watch(ctx context.Context) error {
	if d.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(d.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", d.path, err)
	}

	go d.loop(ctx, w)
	return nil
}

const reloadDebounce = 100 * time.Millisecond

func (d *DaysUnits) loop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	target := filepath.Clean(d.path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(reloadDebounce)
			}

		case <-pending:
			pending = nil
			if err := d.Reload(); err != nil {
				d.log.Warn("days unit rules reload failed", map[string]any{"path": d.path, "error": err})
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			d.log.Error("days unit watcher error", map[string]any{"error": err})
		}
	}
}

// MedicationLookup es lo que necesita la auditoría de reglas.
type MedicationLookup interface {
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

// Audit avisa de reglas que apuntan a medicamentos inexistentes. Devuelve los
// IDs huérfanos.
func (d *DaysUnits) Audit(ctx context.Context, meds MedicationLookup) ([]string, error) {
	var orphans []string
	for _, id := range d.MedicationIDs() {
		if _, err := meds.GetByID(ctx, id); err != nil {
			if errors.Is(err, medications.ErrNotFound) {
				orphans = append(orphans, id)
				continue
			}
			return nil, fmt.Errorf("audit days unit rule %s: %w", id, err)
		}
	}
	if len(orphans) > 0 {
		d.log.Warn("days unit rules reference unknown medications", map[string]any{"medication_ids": orphans})
	}
	return orphans, nil
}
