package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres is a KV backed by a two-column table, for deployments that
// want the click ledger to survive the host (Heroku-style dynos).
type Postgres struct {
	conn *sql.DB
}

func Connect(dsn string) (*Postgres, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	log.Println("[DB] Connected to PostgreSQL")
	return &Postgres{conn: conn}, nil
}

func (p *Postgres) Close() error {
	return p.conn.Close()
}

func (p *Postgres) Ping() error {
	return p.conn.Ping()
}

func (p *Postgres) Migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}

	for _, entry := range entries {
		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		if _, err := p.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", entry.Name(), err)
		}
		log.Printf("[DB] Applied migration: %s\n", entry.Name())
	}
	return nil
}

// Get treats any read error as absence so callers fall back to empty
// state instead of surfacing storage failures.
func (p *Postgres) Get(key string) (string, bool) {
	var value string
	err := p.conn.QueryRow(`SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Printf("[DB] Get %q error: %v\n", key, err)
		return "", false
	}
	return value, true
}

func (p *Postgres) Set(key, value string) error {
	_, err := p.conn.Exec(`
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Remove(key string) error {
	_, err := p.conn.Exec(`DELETE FROM kv WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}
