package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "casebackend/internal/config"
	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
)

// LookupRepository serves the read-only type and region tables.
type LookupRepository struct {
	DB *sql.DB
}

func (r LookupRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r LookupRepository) ListTypes(ctx context.Context) ([]models.CaseType, error) {
	rows, err := r.list(ctx, "case_types")
	if err != nil {
		return nil, err
	}
	out := make([]models.CaseType, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.CaseType{ID: row.id, Name: row.name})
	}
	return out, nil
}

func (r LookupRepository) GetType(ctx context.Context, id int64) (models.CaseType, error) {
	row, err := r.get(ctx, "case_types", "type", id)
	return models.CaseType{ID: row.id, Name: row.name}, err
}

func (r LookupRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.list(ctx, "regions")
	if err != nil {
		return nil, err
	}
	out := make([]models.Region, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Region{ID: row.id, Name: row.name})
	}
	return out, nil
}

func (r LookupRepository) GetRegion(ctx context.Context, id int64) (models.Region, error) {
	row, err := r.get(ctx, "regions", "region", id)
	return models.Region{ID: row.id, Name: row.name}, err
}

type lookupRow struct {
	id   int64
	name string
}

func (r LookupRepository) list(ctx context.Context, table string) ([]lookupRow, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	out := []lookupRow{}
	for rows.Next() {
		var row lookupRow
		if err := rows.Scan(&row.id, &row.name); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r LookupRepository) get(ctx context.Context, table, resource string, id int64) (lookupRow, error) {
	var row lookupRow
	err := r.db().QueryRowContext(ctx, `SELECT id, name FROM `+table+` WHERE id = ?`, id).Scan(&row.id, &row.name)
	if errors.Is(err, sql.ErrNoRows) {
		return row, domain.NotFoundError{Resource: resource, Err: err}
	}
	if err != nil {
		return row, fmt.Errorf("get %s: %w", resource, err)
	}
	return row, nil
}
