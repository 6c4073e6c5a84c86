package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"

	defaultMaxListLimit = 100
	defaultJWTSecret    = "super-secret-key-change-me"
)

type Env struct {
	AppAddr            string   `toml:"app_addr"`
	GinMode            string   `toml:"gin_mode"`
	Store              string   `toml:"store"`
	DBHost             string   `toml:"db_host"`
	DBUser             string   `toml:"db_user"`
	DBPassword         string   `toml:"db_password"`
	DBName             string   `toml:"db_name"`
	JWTSecret          string   `toml:"jwt_secret"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	// MaxListLimit caps the page size a listing request may ask for.
	MaxListLimit int `toml:"max_list_limit"`
}

func defaultEnv() Env {
	return Env{
		AppAddr:   ":8080",
		Store:     StoreMySQL,
		DBHost:    "127.0.0.1:3306",
		DBUser:    "root",
		DBName:    "cases",
		JWTSecret: defaultJWTSecret,
		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		},
		MaxListLimit: defaultMaxListLimit,
	}
}

// LoadEnv builds the runtime configuration. Values from the TOML file named by
// CASES_CONFIG are applied first, then any set environment variable wins.
func LoadEnv() Env {
	env := defaultEnv()

	if path := strings.TrimSpace(os.Getenv("CASES_CONFIG")); path != "" {
		if err := loadFile(path, &env); err != nil {
			log.Printf("warning: config file %s ignored: %v", path, err)
		}
	}

	setString(&env.AppAddr, "APP_ADDR")
	setString(&env.GinMode, "GIN_MODE")
	setString(&env.Store, "CASES_STORE")
	setString(&env.DBHost, "DB_HOST")
	setString(&env.DBUser, "DB_USER")
	setString(&env.DBPassword, "DB_PASSWORD")
	setString(&env.DBName, "DB_NAME")
	setString(&env.JWTSecret, "JWT_SECRET")

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSAllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("CASES_MAX_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("warning: CASES_MAX_LIMIT=%q ignored", v)
		} else {
			env.MaxListLimit = n
		}
	}
	if env.MaxListLimit <= 0 {
		env.MaxListLimit = defaultMaxListLimit
	}
	env.Store = strings.ToLower(strings.TrimSpace(env.Store))

	return env
}

func loadFile(path string, env *Env) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, env)
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
