// Package postgres хранит клиентов, товары и заказы в PostgreSQL: одна JSONB-колонка на сущность.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/clock"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
)

const (
	defaultPingTimeout     = 5 * time.Second
	defaultOpTimeout       = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// ErrStoreNotInitialized возвращается при обращении к закрытому или пустому Store.
var ErrStoreNotInitialized = errors.New("postgres store is not initialized")

// Options — параметры подключения и окружения репозиториев.
type Options struct {
	// OpTimeout ограничивает одно обращение репозитория к базе.
	OpTimeout time.Duration
	Clock     clock.Clock
	Metrics   *metrics.StorageMetrics
	Logger    *log.Entry
}

// Store владеет пулом подключений и общими зависимостями репозиториев.
type Store struct {
	db        *sql.DB
	opTimeout time.Duration
	clock     clock.Clock
	metrics   *metrics.StorageMetrics
	logger    *log.Entry
}

// Open открывает пул к PostgreSQL и проверяет, что база отвечает.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return newStore(db, opts), nil
}

func newStore(db *sql.DB, opts Options) *Store {
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "postgres-store")
	}
	return &Store{
		db:        db,
		opTimeout: opts.OpTimeout,
		clock:     opts.Clock,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// DB возвращает пул для низкоуровневых операций (миграции, тесты).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность базы; используется readiness-проверкой.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrStoreNotInitialized
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close закрывает пул.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) entityLogger(entity string) *log.Entry {
	return s.logger.WithFields(log.Fields{"layer": "repository", "entity": entity})
}
