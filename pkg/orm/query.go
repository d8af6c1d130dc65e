package orm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Cacher is the slice of pkg/cache the ORM needs. It is wired by the HTTP
// kernel so orm and cache never import each other.
type Cacher interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Forget(ctx context.Context, keys ...string) error
}

// CacheStore is nil until the kernel wires it; Cache then always hits the DB.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// On starts a query on an explicit connection (repositories, tests).
func On(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// Scopes applies each scope immediately, in order. gorm's own Scopes defers
// them to execution time, which a derived-table Count would not see.
func (q *Query) Scopes(scopes ...func(*gorm.DB) *gorm.DB) *Query {
	db := q.db
	for _, scope := range scopes {
		db = scope(db)
	}
	return &Query{db: db}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(query, args...)}
}

// Builder exposes the underlying *gorm.DB for clauses the wrapper does not cover.
func (q *Query) Builder() *gorm.DB {
	return q.db
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count returns how many rows the query yields. It selects key from the
// current query and counts the derived table, so a GROUP BY/HAVING query is
// counted by groups and a join never inflates the total.
func (q *Query) Count(key string) (int64, error) {
	var total int64
	sub := q.db.Session(&gorm.Session{}).Select(key)
	err := q.db.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS counted", sub).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("orm: count: %w", err)
	}
	return total, nil
}

// Page loads one page of rows into dest. order is applied verbatim, so only
// pass trusted column lists.
func (q *Query) Page(dest interface{}, page, limit int, order ...string) error {
	db := q.db.Session(&gorm.Session{})
	for _, o := range order {
		db = db.Order(o)
	}
	return db.Offset(Offset(page, limit)).Limit(limit).Find(dest).Error
}

// Cache returns the cached result for key when present, otherwise runs the
// query and stores the result for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	ctx := q.db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if CacheStore != nil && CacheStore.Get(ctx, key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(ctx, key, dest, ttl)
	}
	return nil
}

// Forget drops cached results after a write.
func Forget(ctx context.Context, keys ...string) error {
	if CacheStore == nil {
		return nil
	}
	return CacheStore.Forget(ctx, keys...)
}
