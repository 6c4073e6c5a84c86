package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

type tableDef struct {
	name string
	ddl  string
}

var tables = []tableDef{
	{"case_types", `CREATE TABLE case_types (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	) CHARACTER SET utf8mb4`},
	{"regions", `CREATE TABLE regions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL
	) CHARACTER SET utf8mb4`},
	{"cases", `CREATE TABLE cases (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		number VARCHAR(32) NOT NULL DEFAULT '',
		type_id BIGINT NULL,
		region_id BIGINT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NULL,
		location VARCHAR(255) NOT NULL DEFAULT '',
		state VARCHAR(32) NOT NULL DEFAULT 'draft',
		disapprove_info TEXT NULL,
		mobile VARCHAR(32) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_cases_state (state),
		KEY idx_cases_type (type_id),
		CONSTRAINT fk_cases_type FOREIGN KEY (type_id) REFERENCES case_types(id),
		CONSTRAINT fk_cases_region FOREIGN KEY (region_id) REFERENCES regions(id)
	) CHARACTER SET utf8mb4`},
	{"arranges", `CREATE TABLE arranges (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		case_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		content TEXT NULL,
		arrange_time DATETIME NULL,
		created_at DATETIME NOT NULL,
		KEY idx_arranges_case (case_id),
		CONSTRAINT fk_arranges_case FOREIGN KEY (case_id) REFERENCES cases(id) ON DELETE CASCADE
	) CHARACTER SET utf8mb4`},
	{"users", `CREATE TABLE users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL DEFAULT '',
		mobile VARCHAR(32) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_mobile (mobile)
	) CHARACTER SET utf8mb4`},
}

// columns added after the first release; older databases get them on migrate.
var addedColumns = []struct {
	table, column, ddl string
}{
	{"cases", "disapprove_info", `ALTER TABLE cases ADD COLUMN disapprove_info TEXT NULL`},
	{"cases", "mobile", `ALTER TABLE cases ADD COLUMN mobile VARCHAR(32) NOT NULL DEFAULT ''`},
	{"arranges", "arrange_time", `ALTER TABLE arranges ADD COLUMN arrange_time DATETIME NULL`},
}

// DefaultTypes and DefaultRegions seed empty lookup tables.
var (
	DefaultTypes   = []string{"道路", "路燈", "水溝", "公園", "其他"}
	DefaultRegions = []string{"中正區", "大同區", "中山區", "松山區", "大安區"}
)

// Migrate creates missing tables, adds missing late columns and seeds empty lookups.
// Existing data is never rewritten.
func Migrate(ctx context.Context, conn *sql.DB) error {
	created := map[string]bool{}
	for _, t := range tables {
		if HasTable(ctx, conn, t.name) {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		created[t.name] = true
		log.Printf("[MIGRATE] created table %s", t.name)
	}
	for _, c := range addedColumns {
		if created[c.table] || HasColumn(ctx, conn, c.table, c.column) {
			continue
		}
		if _, err := conn.ExecContext(ctx, c.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.table, c.column, err)
		}
		log.Printf("[MIGRATE] added column %s.%s", c.table, c.column)
	}
	if err := seed(ctx, conn, "case_types", DefaultTypes); err != nil {
		return err
	}
	return seed(ctx, conn, "regions", DefaultRegions)
}

func seed(ctx context.Context, conn *sql.DB, table string, names []string) error {
	var n int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	for _, name := range names {
		if _, err := conn.ExecContext(ctx, `INSERT INTO `+table+` (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}
	log.Printf("[MIGRATE] seeded %s with %d rows", table, len(names))
	return nil
}
