package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string        `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string        `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	User     string        `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string        `yaml:"password" envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string        `yaml:"name" envconfig:"DB_NAME" default:"catalog"`
	SSLMode  string        `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"DB_TIMEOUT" default:"5s"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// NewPostgresDB opens a pool over the pgx stdlib driver and applies the
// embedded goose migrations before returning.
func NewPostgresDB(ctx context.Context, cfg *DB, migrations fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping db")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.Up(db.DB, "."); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migrations up")
	}

	return db, nil
}
