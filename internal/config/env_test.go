package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("CASES_CONFIG", "")
	t.Setenv("CASES_MAX_LIMIT", "")
	t.Setenv("CASES_STORE", "")
	t.Setenv("APP_ADDR", "")

	env := LoadEnv()
	if env.AppAddr != ":8080" || env.Store != StoreMySQL || env.MaxListLimit != 100 {
		t.Fatalf("unexpected defaults: %+v", env)
	}
}

func TestLoadEnvFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.toml")
	body := `
app_addr = ":9090"
store = "Memory"
db_name = "from_file"
max_list_limit = 25
cors_allowed_origins = ["https://a.example"]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CASES_CONFIG", path)
	t.Setenv("CASES_STORE", "")
	t.Setenv("DB_NAME", "from_env")
	t.Setenv("CASES_MAX_LIMIT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("APP_ADDR", "")

	env := LoadEnv()
	if env.AppAddr != ":9090" || env.Store != StoreMemory || env.MaxListLimit != 25 {
		t.Fatalf("file values not applied: %+v", env)
	}
	if env.DBName != "from_env" {
		t.Fatalf("env should override file, got %q", env.DBName)
	}
	if len(env.CORSAllowedOrigins) != 1 || env.CORSAllowedOrigins[0] != "https://a.example" {
		t.Fatalf("unexpected origins %v", env.CORSAllowedOrigins)
	}
}

func TestLoadEnvBadMaxLimitIgnored(t *testing.T) {
	t.Setenv("CASES_CONFIG", "")
	t.Setenv("CASES_MAX_LIMIT", "-4")
	if got := LoadEnv().MaxListLimit; got != 100 {
		t.Fatalf("invalid limit should fall back to 100, got %d", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split %v", got)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "u", DBPassword: "p", DBHost: "db:3306", DBName: "cases"})
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/cases?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}
