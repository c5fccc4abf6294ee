package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const DefaultDocument = "projects"

// Store keeps the serialized project list as one jsonb document.
type Store struct {
	db   *pgxpool.Pool
	name string
}

func NewStore(db *pgxpool.Pool, name string) *Store {
	if name == "" {
		name = DefaultDocument
	}
	return &Store{db: db, name: name}
}

func (s *Store) Name() string { return "postgres" }

// EnsureSchema creates the documents table when it is missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists project_documents (
  name       text primary key,
  data       jsonb not null,
  updated_at timestamptz not null default now()
);
`
	if _, err := s.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("create project_documents: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	const q = `
select data::text
from project_documents
where name = $1;
`
	var text string
	err := s.db.QueryRow(ctx, q, s.name).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load projects document: %w", err)
	}
	return []byte(text), nil
}

func (s *Store) Save(ctx context.Context, data []byte) error {
	const q = `
insert into project_documents (name, data, updated_at)
values ($1, $2::jsonb, now())
on conflict (name) do update
set data = excluded.data, updated_at = now();
`
	if _, err := s.db.Exec(ctx, q, s.name, string(data)); err != nil {
		return fmt.Errorf("save projects document: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
