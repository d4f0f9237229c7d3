package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	migrationsGlob = "sql/migrations/*.sql"
	// migrationLockKey — ключ pg_advisory_lock, общий для всех экземпляров сервиса.
	migrationLockKey   = int64(20240917)
	migrationLockWait  = 10 * time.Second
	migrationsTableDDL = `
CREATE TABLE IF NOT EXISTS public.schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

var (
	//go:embed sql/migrations/*.sql
	embeddedMigrations embed.FS

	migrationFileName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)
)

// Migration — пара up/down-скриптов одной версии схемы.
type Migration struct {
	Version int64
	Name    string
	Up      string
	Down    string
}

// MigrationStatus описывает состояние схемы в базе.
type MigrationStatus struct {
	Version int64
	Applied int
	Pending int
}

// Migrator применяет встроенные SQL-миграции под advisory lock.
type Migrator struct {
	db         *sql.DB
	migrations []Migration
	logger     *log.Entry
}

// NewMigrator загружает встроенные миграции.
func NewMigrator(store *Store, logger *log.Entry) (*Migrator, error) {
	if store == nil || store.db == nil {
		return nil, ErrStoreNotInitialized
	}
	if logger == nil {
		logger = log.WithField("component", "migrator")
	}

	migrations, err := loadMigrations(embeddedMigrations)
	if err != nil {
		return nil, err
	}
	return &Migrator{db: store.db, migrations: migrations, logger: logger}, nil
}

// Up применяет до steps неприменённых миграций; при steps <= 0 все.
func (m *Migrator) Up(ctx context.Context, steps int) error {
	return m.withLock(ctx, func(conn *sql.Conn) error {
		applied, err := appliedVersions(ctx, conn)
		if err != nil {
			return err
		}

		done := 0
		for _, mig := range m.migrations {
			if steps > 0 && done >= steps {
				break
			}
			if _, ok := applied[mig.Version]; ok {
				continue
			}
			if err := m.apply(ctx, conn, mig, true); err != nil {
				return err
			}
			done++
		}
		return nil
	})
}

// Down откатывает steps последних миграций; при steps <= 0 одну.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return m.withLock(ctx, func(conn *sql.Conn) error {
		applied, err := appliedVersions(ctx, conn)
		if err != nil {
			return err
		}

		byVersion := make(map[int64]Migration, len(m.migrations))
		for _, mig := range m.migrations {
			byVersion[mig.Version] = mig
		}

		for _, version := range newestFirst(applied, steps) {
			mig, ok := byVersion[version]
			if !ok {
				return fmt.Errorf("cannot roll back unknown migration version %d", version)
			}
			if err := m.apply(ctx, conn, mig, false); err != nil {
				return err
			}
		}
		return nil
	})
}

// Status сообщает текущую версию и число применённых и ожидающих миграций.
func (m *Migrator) Status(ctx context.Context) (MigrationStatus, error) {
	var status MigrationStatus

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return status, fmt.Errorf("acquire db connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, migrationsTableDDL); err != nil {
		return status, fmt.Errorf("ensure migrations table: %w", err)
	}
	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return status, err
	}

	for version := range applied {
		if version > status.Version {
			status.Version = version
		}
	}
	status.Applied = len(applied)
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; !ok {
			status.Pending++
		}
	}
	return status, nil
}

func (m *Migrator) withLock(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire db connection: %w", err)
	}
	defer conn.Close()

	lockCtx, cancel := context.WithTimeout(ctx, migrationLockWait)
	defer cancel()
	if _, err := conn.ExecContext(lockCtx, "SELECT pg_advisory_lock($1)", migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockKey)
	}()

	if _, err := conn.ExecContext(ctx, migrationsTableDDL); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}
	return fn(conn)
}

// apply выполняет скрипт и запись в schema_migrations в одной транзакции.
func (m *Migrator) apply(ctx context.Context, conn *sql.Conn, mig Migration, up bool) error {
	direction, script := "down", mig.Down
	if up {
		direction, script = "up", mig.Up
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s migration %d: %w", direction, mig.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("execute %s migration %d_%s: %w", direction, mig.Version, mig.Name, err)
	}

	if up {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO public.schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM public.schema_migrations WHERE version = $1`, mig.Version)
	}
	if err != nil {
		return fmt.Errorf("record %s migration %d_%s: %w", direction, mig.Version, mig.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s migration %d_%s: %w", direction, mig.Version, mig.Name, err)
	}

	m.logger.WithFields(log.Fields{
		"version":   mig.Version,
		"name":      mig.Name,
		"direction": direction,
	}).Info("migration applied")
	return nil
}

func appliedVersions(ctx context.Context, conn *sql.Conn) (map[int64]struct{}, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM public.schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]struct{})
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return applied, nil
}

func newestFirst(applied map[int64]struct{}, limit int) []int64 {
	versions := make([]int64, 0, len(applied))
	for version := range applied {
		versions = append(versions, version)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] > versions[j] })
	if len(versions) > limit {
		versions = versions[:limit]
	}
	return versions
}

// loadMigrations читает пары NNNN_name.up.sql / NNNN_name.down.sql и сортирует по версии.
func loadMigrations(fsys fs.FS) ([]Migration, error) {
	files, err := fs.Glob(fsys, migrationsGlob)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no migration files found")
	}

	byVersion := make(map[int64]*Migration)
	for _, file := range files {
		base := path.Base(file)
		parts := migrationFileName.FindStringSubmatch(base)
		if parts == nil {
			return nil, fmt.Errorf("invalid migration file name: %s", base)
		}
		version, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", base, err)
		}

		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", base, err)
		}
		script := strings.TrimSpace(string(raw))
		if script == "" {
			return nil, fmt.Errorf("migration file is empty: %s", base)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: parts[2]}
			byVersion[version] = mig
		}
		if mig.Name != parts[2] {
			return nil, fmt.Errorf("migration name mismatch for version %d: %s vs %s", version, mig.Name, parts[2])
		}

		target := &mig.Up
		if parts[3] == "down" {
			target = &mig.Down
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate %s migration for version %d", parts[3], version)
		}
		*target = script
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" || mig.Down == "" {
			return nil, fmt.Errorf("migration %d_%s must have both up and down files", mig.Version, mig.Name)
		}
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}
