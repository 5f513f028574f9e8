package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"clinic-medications/internal/domain/sets"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation es el SQLSTATE de Postgres para UNIQUE.
const uniqueViolation = "23505"

type SetsRepo struct {
	db *sql.DB
}

func NewSetsRepo(db *sql.DB) *SetsRepo {
	return &SetsRepo{db: db}
}

func (r *SetsRepo) Create(ctx context.Context, s sets.Set) error {
	ids, err := encodeIDs(s.MedicationIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medication_sets (id, name, medication_ids, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`, s.ID, s.Name, ids, s.CreatedAt, s.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return sets.ErrConflict
	}
	return err
}

func (r *SetsRepo) Update(ctx context.Context, s sets.Set) error {
	ids, err := encodeIDs(s.MedicationIDs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE medication_sets
		SET medication_ids = $2, updated_at = $3
		WHERE name = $1
	`, s.Name, ids, s.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sets.ErrNotFound
	}
	return nil
}

func (r *SetsRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medication_sets WHERE name = $1`, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sets.ErrNotFound
	}
	return nil
}

func (r *SetsRepo) GetByName(ctx context.Context, name string) (sets.Set, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, medication_ids, created_at, updated_at
		FROM medication_sets
		WHERE name = $1
	`, name)

	s, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sets.Set{}, sets.ErrNotFound
		}
		return sets.Set{}, err
	}
	return s, nil
}

func (r *SetsRepo) List(ctx context.Context) ([]sets.Set, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, medication_ids, created_at, updated_at
		FROM medication_sets
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sets.Set, 0)
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSet(sc scanner) (sets.Set, error) {
	var (
		s   sets.Set
		ids []byte
	)
	if err := sc.Scan(&s.ID, &s.Name, &ids, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return sets.Set{}, err
	}
	if err := json.Unmarshal(ids, &s.MedicationIDs); err != nil {
		return sets.Set{}, err
	}
	return s, nil
}

func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
