package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "casebackend/internal/config"
	intdb "casebackend/internal/db"
	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
)

// CaseRepository reads and writes cases/arranges in MySQL.
type CaseRepository struct {
	DB *sql.DB
}

func (r CaseRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var caseSearchColumns = map[domain.SearchField]string{
	domain.FieldID:             "CAST(c.id AS CHAR)",
	domain.FieldNumber:         "c.number",
	domain.FieldTitle:          "c.title",
	domain.FieldContent:        "c.content",
	domain.FieldLocation:       "c.location",
	domain.FieldTypeName:       "t.name",
	domain.FieldState:          "c.state",
	domain.FieldDisapproveInfo: "c.disapprove_info",
}

var caseSortColumns = map[domain.SortField]string{
	domain.SortByID:     "c.id",
	domain.SortByNumber: "c.number",
	domain.SortByType:   "c.type_id",
}

const caseColumns = `c.id, COALESCE(c.number,''), COALESCE(c.type_id,0), COALESCE(t.name,''),
	COALESCE(c.region_id,0), COALESCE(r.name,''), COALESCE(c.title,''), COALESCE(c.content,''),
	COALESCE(c.location,''), c.state, COALESCE(c.disapprove_info,''), COALESCE(c.mobile,''),
	c.created_at, c.updated_at`

// MatchArrangeIDs returns ids of arranges whose title or content contains term.
func (r CaseRepository) MatchArrangeIDs(ctx context.Context, term string) ([]int64, error) {
	pattern := intdb.LikePattern(term)
	rows, err := r.db().QueryContext(ctx, `
		SELECT id FROM arranges
		WHERE LOWER(COALESCE(title,'')) LIKE ? OR LOWER(COALESCE(content,'')) LIKE ?
		ORDER BY id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("match arranges: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountCases counts cases matching f before any windowing.
func (r CaseRepository) CountCases(ctx context.Context, f domain.CaseFilter) (int, error) {
	where, args := buildCaseWhere(f)
	countExpr := "COUNT(*)"
	if f.Distinct {
		countExpr = "COUNT(DISTINCT c.id)"
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, countExpr, caseFrom(f), where)

	var n int
	if err := r.db().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	return n, nil
}

// FindCases returns the window of cases matching f ordered by s. Ties on the
// sort column break on id in the same direction.
func (r CaseRepository) FindCases(ctx context.Context, f domain.CaseFilter, s domain.Sort, w domain.Window) ([]models.Case, error) {
	where, args := buildCaseWhere(f)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, caseColumns, caseFrom(f), where)
	if f.Distinct {
		query += " GROUP BY c.id"
	}
	query += " ORDER BY " + orderClause(s) + " LIMIT ? OFFSET ?"
	args = append(args, w.Limit, w.Offset)

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find cases: %w", err)
	}
	defer rows.Close()

	out := []models.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCase loads a non-draft case with its arranges.
func (r CaseRepository) GetCase(ctx context.Context, id int64) (models.Case, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+caseColumns+`
		FROM cases c
		LEFT JOIN case_types t ON t.id = c.type_id
		LEFT JOIN regions r ON r.id = c.region_id
		WHERE c.id = ? AND c.state <> ?`, id, models.StateDraft)
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Case{}, domain.NotFoundError{Resource: "case", Err: err}
		}
		return models.Case{}, fmt.Errorf("get case: %w", err)
	}

	arranges, err := r.listArranges(ctx, id)
	if err != nil {
		return models.Case{}, err
	}
	c.Arranges = arranges
	return c, nil
}

func (r CaseRepository) listArranges(ctx context.Context, caseID int64) ([]models.Arrange, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, case_id, COALESCE(title,''), COALESCE(content,''), arrange_time, created_at
		FROM arranges WHERE case_id = ? ORDER BY id`, caseID)
	if err != nil {
		return nil, fmt.Errorf("list arranges: %w", err)
	}
	defer rows.Close()

	out := []models.Arrange{}
	for rows.Next() {
		var (
			a  models.Arrange
			at sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.CaseID, &a.Title, &a.Content, &at, &a.CreatedAt); err != nil {
			return nil, err
		}
		if at.Valid {
			t := at.Time
			a.ArrangeTime = &t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateCase inserts c and assigns its number from the new id.
func (r CaseRepository) CreateCase(ctx context.Context, c models.Case) (models.Case, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return c, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO cases (number, type_id, region_id, title, content, location, state, disapprove_info, mobile, created_at, updated_at)
		VALUES ('', NULLIF(?,0), NULLIF(?,0), ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.TypeID, c.RegionID, c.Title, c.Content, c.Location, c.State,
		intdb.NullIfEmpty(c.DisapproveInfo), c.Mobile, now, now)
	if err != nil {
		return c, fmt.Errorf("insert case: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return c, err
	}

	number := models.CaseNumber(now, id)
	if _, err := tx.ExecContext(ctx, `UPDATE cases SET number = ? WHERE id = ?`, number, id); err != nil {
		return c, fmt.Errorf("assign case number: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return c, err
	}

	c.ID = id
	c.Number = number
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// Ping checks the connection is usable.
func (r CaseRepository) Ping(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return errors.New("database not connected")
	}
	return db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (models.Case, error) {
	var c models.Case
	err := row.Scan(&c.ID, &c.Number, &c.TypeID, &c.TypeName, &c.RegionID, &c.RegionName,
		&c.Title, &c.Content, &c.Location, &c.State, &c.DisapproveInfo, &c.Mobile,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func caseFrom(f domain.CaseFilter) string {
	from := `cases c
		LEFT JOIN case_types t ON t.id = c.type_id
		LEFT JOIN regions r ON r.id = c.region_id`
	if f.JoinsArranges() {
		from += `
		LEFT JOIN arranges a ON a.case_id = c.id`
	}
	return from
}

// buildCaseWhere renders f as a WHERE body; clauses are ANDed, fields inside a clause ORed.
func buildCaseWhere(f domain.CaseFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if n := len(f.ExcludeStates); n > 0 {
		where = append(where, "c.state NOT IN ("+intdb.Placeholders(n)+")")
		for _, s := range f.ExcludeStates {
			args = append(args, s)
		}
	}

	for _, cl := range f.Clauses {
		ors := []string{}
		pattern := intdb.LikePattern(cl.Term)
		for _, field := range cl.Fields {
			col, ok := caseSearchColumns[field]
			if !ok {
				continue
			}
			ors = append(ors, "LOWER(COALESCE("+col+",'')) LIKE ?")
			args = append(args, pattern)
		}
		if n := len(cl.ArrangeIDs); n > 0 {
			ors = append(ors, "a.id IN ("+intdb.Placeholders(n)+")")
			for _, id := range cl.ArrangeIDs {
				args = append(args, id)
			}
		}
		if len(ors) == 0 {
			where = append(where, "1=0")
			continue
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(where, " AND "), args
}

func orderClause(s domain.Sort) string {
	col, ok := caseSortColumns[s.Field]
	if !ok {
		col = "c.id"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	if col == "c.id" {
		return col + " " + dir
	}
	return col + " " + dir + ", c.id " + dir
}
