package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/m1kezera/ai-faq-widget/internal/config"
)

// DocChunk is a site-scoped fragment of ingested reference text.
// Chunks are immutable once created; there is no update path.
type DocChunk struct {
	bun.BaseModel `bun:"table:doc_chunks,alias:dc"`
	ID            string    `bun:"id,pk"`
	SiteKey       string    `bun:"site_key,notnull"`
	Chunk         string    `bun:"chunk,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

// Site is a registered tenant with its widget key and monthly quota.
type Site struct {
	bun.BaseModel `bun:"table:sites,alias:s"`
	ID            string    `bun:"id,pk"`
	SiteKey       string    `bun:"site_key,notnull,unique"`
	Name          string    `bun:"name"`
	Plan          string    `bun:"plan,notnull"`
	MonthlyQuota  int       `bun:"monthly_quota,notnull"`
	Usage         int       `bun:"usage,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

// Lead holds contact details collected by the widget.
type Lead struct {
	bun.BaseModel `bun:"table:leads,alias:l"`
	ID            string         `bun:"id,pk"`
	SiteKey       string         `bun:"site_key,notnull"`
	Name          string         `bun:"name"`
	Email         string         `bun:"email"`
	Message       string         `bun:"message"`
	Source        string         `bun:"source"`
	Meta          map[string]any `bun:"meta,type:jsonb"`
	CreatedAt     time.Time      `bun:"created_at,notnull"`
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.URL + "?sslmode=disable"
	// return sql.Open("postgres", dsn)
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Password))), nil
}

// InitDB creates the tables if they do not exist yet.
func InitDB(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*DocChunk)(nil), (*Site)(nil), (*Lead)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
