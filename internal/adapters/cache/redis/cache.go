// Package redis cachea las lecturas de medicamentos por ID (read-through).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/medications"
	"clinic-medications/internal/platform/logger"
	"clinic-medications/internal/platform/metrics"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "medication:"

// Client es el subconjunto de *goredis.Client que usa la cache.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Dial conecta y hace ping.
func Dial(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// MedicationRepo envuelve un repositorio. Si redis falla se sigue con el
// repositorio: la cache nunca rompe una lectura.
type MedicationRepo struct {
	next medications.Repository
	rdb  Client
	ttl  time.Duration
	log  logger.Logger
}

func NewMedicationRepo(next medications.Repository, rdb Client, ttl time.Duration, log logger.Logger) *MedicationRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &MedicationRepo{next: next, rdb: rdb, ttl: ttl, log: log}
}

type cachedMedication struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Effects      string            `json:"effects"`
	Precautions  string            `json:"precautions"`
	DosageAmount string            `json:"dosageAmount"`
	DosageTiming dosage.TimingList `json:"dosageTiming"`
	Genre        dosage.Genre      `json:"genre"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (r *MedicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	switch {
	case err == nil:
		var c cachedMedication
		if jerr := json.Unmarshal(raw, &c); jerr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return medications.Medication(c), nil
		}
		r.log.Warn("medication cache entry unreadable", map[string]any{"medication_id": id})
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, goredis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		r.log.Warn("medication cache get failed", map[string]any{"medication_id": id, "error": err})
		metrics.CacheLookups.WithLabelValues("error").Inc()
	}

	m, err := r.next.GetByID(ctx, id)
	if err != nil {
		return medications.Medication{}, err
	}
	r.store(ctx, m)
	return m, nil
}

func (r *MedicationRepo) Create(ctx context.Context, m medications.Medication) error {
	return r.next.Create(ctx, m)
}

func (r *MedicationRepo) Update(ctx context.Context, m medications.Medication) error {
	if err := r.next.Update(ctx, m); err != nil {
		return err
	}
	r.invalidate(ctx, m.ID)
	return nil
}

func (r *MedicationRepo) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *MedicationRepo) List(ctx context.Context) ([]medications.Medication, error) {
	return r.next.List(ctx)
}

func (r *MedicationRepo) store(ctx context.Context, m medications.Medication) {
	b, err := json.Marshal(cachedMedication(m))
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, keyPrefix+m.ID, b, r.ttl).Err(); err != nil {
		r.log.Warn("medication cache set failed", map[string]any{"medication_id": m.ID, "error": err})
	}
}

func (r *MedicationRepo) invalidate(ctx context.Context, id string) {
	if err := r.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		r.log.Warn("medication cache invalidate failed", map[string]any{"medication_id": id, "error": err})
	}
}
