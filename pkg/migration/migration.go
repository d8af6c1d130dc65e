// Package migration runs and tracks schema migrations.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
//	}
//
// and are applied in name order by `bookstore migrate`.
package migration

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "bookstore_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration. Names should sort chronologically.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// StatusRow is one line of `migrate:status`.
type StatusRow struct {
	Name  string
	Ran   bool
	Batch int
}

type Runner struct {
	db      *gorm.DB
	out     io.Writer
	entries []entry
}

// New creates a Runner over every registered migration, printing to stdout.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db, out: os.Stdout, entries: sorted(registry)}
}

// Only restricts the runner to the given migrations (used by tests).
func (r *Runner) Only(list map[string]Migration) *Runner {
	entries := make([]entry, 0, len(list))
	for name, m := range list {
		entries = append(entries, entry{name: name, m: m})
	}
	r.entries = sorted(entries)
	return r
}

func (r *Runner) Output(w io.Writer) *Runner {
	r.out = w
	return r
}

func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) pending() ([]entry, error) {
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	var out []entry
	for _, e := range r.entries {
		if _, ok := ran[e.name]; !ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Run applies every pending migration as one batch. Each migration and its
// tracking row commit together.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, e := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", e.name)

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", e.name, err)
			}
			return tx.Create(&migrationRecord{Name: e.name, Batch: batch}).Error
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", e.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return fmt.Errorf("migration: load batch %d: %w", batch, err)
	}

	known := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		known[e.name] = e.m
	}

	for _, rec := range records {
		m, ok := known[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)

		rec := rec
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("migration: %s down: %w", rec.Name, err)
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return err
		}
	}

	logger.Info("migration: rolled back", "batch", batch, "count", len(records))
	return nil
}

// Status reports every known migration and whether it has run.
func (r *Runner) Status() ([]StatusRow, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}

	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	rows := make([]StatusRow, 0, len(r.entries))
	for _, e := range r.entries {
		rec, ok := ran[e.name]
		rows = append(rows, StatusRow{Name: e.name, Ran: ok, Batch: rec.Batch})
	}
	return rows, nil
}

// PrintStatus writes Status as a table.
func (r *Runner) PrintStatus() error {
	rows, err := r.Status()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	for _, row := range rows {
		if row.Ran {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", row.Name, "Ran", row.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", row.Name, "Pending")
		}
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}

	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var batch int
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0)").Scan(&batch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return batch, nil
}

func sorted(in []entry) []entry {
	out := append([]entry(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
