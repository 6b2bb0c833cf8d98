package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const flagsTable = "flags"

type flagRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *flagRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := r.b.Select("value").
		From(entsql.Table(flagsTable)).
		Where(entsql.EQ("key", key)).
		Query()
	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get flag %q: %w", key, err)
	}
	return value, nil
}

func (r *flagRepo) Set(ctx context.Context, key, value string) error {
	query, args := r.b.Insert(flagsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set flag %q: %w", key, err)
	}
	return nil
}

func (r *flagRepo) Delete(ctx context.Context, key string) error {
	query, args := r.b.Delete(flagsTable).Where(entsql.EQ("key", key)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete flag %q: %w", key, err)
	}
	return nil
}

func (r *flagRepo) Clear(ctx context.Context) error {
	query, args := r.b.Delete(flagsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear flags: %w", err)
	}
	return nil
}

// MarkReopen records that the drill for path should be reopened on the next
// bare invocation.
func MarkReopen(ctx context.Context, repo FlagRepo, path string) error {
	if err := repo.Set(ctx, KeyReopen, "1"); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return repo.Set(ctx, KeyLastFile, path)
}

// PendingReopen reports whether a reopen was requested and returns the file
// to reopen. The flag is left in place; call ClearReopen once the reopen is
// actually honored.
func PendingReopen(ctx context.Context, repo FlagRepo) (string, bool, error) {
	v, err := repo.Get(ctx, KeyReopen)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if v != "1" {
		return "", false, nil
	}
	path, err := repo.Get(ctx, KeyLastFile)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// ClearReopen removes the reopen flag.
func ClearReopen(ctx context.Context, repo FlagRepo) error {
	return repo.Delete(ctx, KeyReopen)
}
