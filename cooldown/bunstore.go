package cooldown

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// cooldownEntry is the sqlite row behind BunStore. Expiry is stored as
// unix milliseconds.
type cooldownEntry struct {
	bun.BaseModel `bun:"table:cooldowns"`

	Key    string `bun:"key,pk"`
	Expiry int64  `bun:"expiry,notnull"`
}

// BunStore persists cooldowns in a bun-managed database so they survive
// restarts.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(ctx context.Context, db *bun.DB) (*BunStore, error) {
	if _, err := db.NewCreateTable().
		Model((*cooldownEntry)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("can't create cooldowns table: %w", err)
	}
	return &BunStore{db: db}, nil
}

func (s *BunStore) Get(ctx context.Context, key string) (time.Time, bool, error) {
	entry := new(cooldownEntry)
	err := s.db.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(entry.Expiry), true, nil
}

func (s *BunStore) Set(ctx context.Context, key string, expiry time.Time, _ time.Duration) error {
	entry := cooldownEntry{Key: key, Expiry: expiry.UnixMilli()}
	_, err := s.db.NewInsert().
		Model(&entry).
		On("CONFLICT (key) DO UPDATE").
		Set("expiry = EXCLUDED.expiry").
		Exec(ctx)
	return err
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*cooldownEntry)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}

func (s *BunStore) DeleteBucket(ctx context.Context, prefix string) error {
	_, err := s.db.NewDelete().
		Model((*cooldownEntry)(nil)).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Exec(ctx)
	return err
}

func (s *BunStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.NewDelete().
		Model((*cooldownEntry)(nil)).
		Where("expiry <= ?", now.UnixMilli()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func (s *BunStore) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*cooldownEntry)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}

// escapeLike keeps bucket prefixes containing % or _ from widening the
// DeleteBucket match.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
