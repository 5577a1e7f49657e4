package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"slashkit/internal/metrics"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Tag is one stored text snippet, scoped to a guild.
type Tag struct {
	GuildID   string
	Name      string
	Body      string
	AuthorID  string
	UpdatedAt time.Time
}

// Quote is a message saved through the context-menu command.
type Quote struct {
	GuildID  string
	Content  string
	AuthorID string
	SavedBy  string
	SavedAt  time.Time
}

type Store interface {
	DiceSides(ctx context.Context, guildID string) (int, error)
	SetDiceSides(ctx context.Context, guildID string, sides int) error
	SaveTag(ctx context.Context, tag Tag) error
	Tag(ctx context.Context, guildID, name string) (*Tag, error)
	DeleteTag(ctx context.Context, guildID, name string) error
	PurgeTags(ctx context.Context, guildID string) (int64, error)
	ListTags(ctx context.Context, guildID, prefix string, limit int) ([]string, error)
	SaveQuote(ctx context.Context, quote Quote) error
	Close()
}

// dbtx is the slice of pgxpool.Pool the queries need; tests substitute a
// mock.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type PostgresStore struct {
	pool *pgxpool.Pool
	db   dbtx
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{pool: pool, db: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// newStoreWithDB wires a store over an arbitrary query executor.
func newStoreWithDB(db dbtx) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS guild_settings (
    guild_id   TEXT PRIMARY KEY,
    dice_sides INT  NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
    guild_id   TEXT        NOT NULL,
    name       TEXT        NOT NULL,
    body       TEXT        NOT NULL,
    author_id  TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (guild_id, name)
);
CREATE TABLE IF NOT EXISTS quotes (
    id        BIGSERIAL   PRIMARY KEY,
    guild_id  TEXT        NOT NULL,
    content   TEXT        NOT NULL,
    author_id TEXT        NOT NULL,
    saved_by  TEXT        NOT NULL,
    saved_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) DiceSides(ctx context.Context, guildID string) (int, error) {
	var sides int
	err := s.db.QueryRow(ctx,
		`SELECT dice_sides FROM guild_settings WHERE guild_id = $1`,
		guildID,
	).Scan(&sides)
	observe("dice_sides", err)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get dice sides: %w", err)
	}
	return sides, nil
}

func (s *PostgresStore) SetDiceSides(ctx context.Context, guildID string, sides int) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO guild_settings (guild_id, dice_sides) VALUES ($1, $2)
		 ON CONFLICT (guild_id) DO UPDATE SET dice_sides = EXCLUDED.dice_sides`,
		guildID, sides,
	)
	observe("set_dice_sides", err)
	if err != nil {
		return fmt.Errorf("set dice sides: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveTag(ctx context.Context, tag Tag) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tags (guild_id, name, body, author_id, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (guild_id, name)
		 DO UPDATE SET body = EXCLUDED.body, author_id = EXCLUDED.author_id, updated_at = now()`,
		tag.GuildID, tag.Name, tag.Body, tag.AuthorID,
	)
	observe("save_tag", err)
	if err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (s *PostgresStore) Tag(ctx context.Context, guildID, name string) (*Tag, error) {
	tag := Tag{GuildID: guildID, Name: name}
	err := s.db.QueryRow(ctx,
		`SELECT body, author_id, updated_at FROM tags WHERE guild_id = $1 AND name = $2`,
		guildID, name,
	).Scan(&tag.Body, &tag.AuthorID, &tag.UpdatedAt)
	observe("get_tag", err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

func (s *PostgresStore) DeleteTag(ctx context.Context, guildID, name string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM tags WHERE guild_id = $1 AND name = $2`,
		guildID, name,
	)
	observe("delete_tag", err)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) PurgeTags(ctx context.Context, guildID string) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM tags WHERE guild_id = $1`,
		guildID,
	)
	observe("purge_tags", err)
	if err != nil {
		return 0, fmt.Errorf("purge tags: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) ListTags(ctx context.Context, guildID, prefix string, limit int) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name FROM tags
		 WHERE guild_id = $1 AND name LIKE $2 || '%'
		 ORDER BY name LIMIT $3`,
		guildID, prefix, limit,
	)
	observe("list_tags", err)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return names, nil
}

func (s *PostgresStore) SaveQuote(ctx context.Context, quote Quote) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO quotes (guild_id, content, author_id, saved_by) VALUES ($1, $2, $3, $4)`,
		quote.GuildID, quote.Content, quote.AuthorID, quote.SavedBy,
	)
	observe("save_quote", err)
	if err != nil {
		return fmt.Errorf("save quote: %w", err)
	}
	return nil
}

func observe(query string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StorageQueries.WithLabelValues(query, status).Inc()
}
