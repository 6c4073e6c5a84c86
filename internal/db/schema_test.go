package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrateExistingSchemaAddsMissingColumns(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	for _, tbl := range tables {
		mock.ExpectQuery("information_schema\\.tables").WithArgs(tbl.name).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(tbl.name))
	}
	mock.ExpectQuery("information_schema\\.columns").WithArgs("cases", "disapprove_info").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("disapprove_info"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("cases", "mobile").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE cases ADD COLUMN mobile").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("arranges", "arrange_time").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("arrange_time"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM case_types").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM regions").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	for _, name := range DefaultRegions {
		mock.ExpectExec("INSERT INTO regions").WithArgs(name).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	if err := Migrate(context.Background(), conn); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"Roof":   "%roof%",
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`c:\tmp`: `%c:\\tmp%`,
		"":       "%%",
	}
	for in, want := range cases {
		if got := LikePattern(in); got != want {
			t.Fatalf("LikePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := Placeholders(3); got != "?,?,?" {
		t.Fatalf("unexpected placeholders %q", got)
	}
	if got := Placeholders(0); got != "" {
		t.Fatalf("zero placeholders should be empty, got %q", got)
	}
}
