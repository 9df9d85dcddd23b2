package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Settings carries all runtime configuration, read from the environment
// (optionally via a .env file).
type Settings struct {
	Port       string
	DSN        string // Postgres DSN; empty selects the embedded SQLite store
	SQLitePath string
	UploadDir  string
	BaseURL    string // absolute base for share links, e.g. https://atlas.example.com

	SeedDemo            bool // populate demo data when the store has zero sites
	ShareIncludeDeleted bool // include soft-deleted sites/jobs in share views
}

// Load reads Settings from the environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Settings{
		Port:                envOr("PORT", "8080"),
		DSN:                 os.Getenv("DB_DSN"),
		SQLitePath:          envOr("SQLITE_PATH", filepath.Join("data", "wellatlas.db")),
		UploadDir:           envOr("UPLOAD_DIR", "uploads"),
		BaseURL:             os.Getenv("BASE_URL"),
		SeedDemo:            envBool("SEED_DEMO", true),
		ShareIncludeDeleted: envBool("SHARE_INCLUDE_DELETED", false),
	}
}

// Connect opens the database selected by the settings: Postgres when
// DB_DSN is set, the embedded SQLite file otherwise. Duplicate-key errors
// are translated so callers can test against gorm.ErrDuplicatedKey
// regardless of driver.
func Connect(s Settings) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if s.DSN != "" {
		return gorm.Open(postgres.Open(s.DSN), cfg)
	}

	if dir := filepath.Dir(s.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(s.SQLitePath), cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
