package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/clock"
	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
)

// documentTable — таблица вида (id BIGSERIAL, <entity>_json JSONB, created, updated).
// M — доменная модель, D — её JSON-документ без идентификатора.
type documentTable[M any, D any] struct {
	db        *sql.DB
	entity    string
	qualified string
	column    string
	timeout   time.Duration
	clock     clock.Clock
	metrics   *metrics.StorageMetrics
	logger    *log.Entry

	toDocument func(M) D
	toModel    func(id int64, doc D) M
}

func newDocumentTable[M any, D any](
	store *Store,
	entity, qualified, column string,
	toDocument func(M) D,
	toModel func(int64, D) M,
) documentTable[M, D] {
	return documentTable[M, D]{
		db:         store.db,
		entity:     entity,
		qualified:  qualified,
		column:     column,
		timeout:    store.opTimeout,
		clock:      store.clock,
		metrics:    store.metrics,
		logger:     store.entityLogger(entity),
		toDocument: toDocument,
		toModel:    toModel,
	}
}

// GetByID читает одну строку; отсутствие строки даёт Empty.
func (t documentTable[M, D]) GetByID(ctx context.Context, id int64) dbresult.Result[M] {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = $1`, t.column, t.qualified)

	return observe(t, "get_by_id", time.Now(), dbresult.WrapRow(ctx, t.logger, "get_by_id",
		func(ctx context.Context) (dbresult.Option[M], error) {
			ctx, cancel := context.WithTimeout(ctx, t.timeout)
			defer cancel()

			model, err := t.scan(t.db.QueryRowContext(ctx, query, id))
			if errors.Is(err, sql.ErrNoRows) {
				return dbresult.None[M](), nil
			}
			if err != nil {
				return dbresult.None[M](), err
			}
			return dbresult.Some(model), nil
		}))
}

// getByIDs читает все найденные строки из списка; отсутствующие просто не попадают в выборку.
func (t documentTable[M, D]) getByIDs(ctx context.Context, ids []int64) dbresult.Result[M] {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = ANY($1) ORDER BY id`, t.column, t.qualified)

	return observe(t, "get_by_ids", time.Now(), dbresult.WrapMany(ctx, t.logger, "get_by_ids",
		func(ctx context.Context) ([]M, error) {
			if len(ids) == 0 {
				return []M{}, nil
			}
			ctx, cancel := context.WithTimeout(ctx, t.timeout)
			defer cancel()

			rows, err := t.db.QueryContext(ctx, query, ids)
			if err != nil {
				return nil, fmt.Errorf("select %s rows: %w", t.entity, err)
			}
			defer rows.Close()

			models := make([]M, 0, len(ids))
			for rows.Next() {
				model, err := t.scan(rows)
				if err != nil {
					return nil, err
				}
				models = append(models, model)
			}
			if err := rows.Err(); err != nil {
				return nil, fmt.Errorf("iterate %s rows: %w", t.entity, err)
			}
			return models, nil
		}))
}

// Insert сохраняет документ и возвращает присвоенный базой идентификатор.
func (t documentTable[M, D]) Insert(ctx context.Context, model M) dbresult.Result[int64] {
	query := fmt.Sprintf(`INSERT INTO %s (%s, created, updated) VALUES ($1, $2, $2) RETURNING id`, t.qualified, t.column)

	return observe(t, "insert", time.Now(), dbresult.Wrap(ctx, t.logger, "insert",
		func(ctx context.Context) (int64, error) {
			payload, err := json.Marshal(t.toDocument(model))
			if err != nil {
				return 0, fmt.Errorf("marshal %s document: %w", t.entity, err)
			}

			ctx, cancel := context.WithTimeout(ctx, t.timeout)
			defer cancel()

			var id int64
			if err := t.db.QueryRowContext(ctx, query, payload, t.clock.Now()).Scan(&id); err != nil {
				return 0, fmt.Errorf("insert %s: %w", t.entity, err)
			}
			return id, nil
		}))
}

// Delete удаляет строку и возвращает число затронутых строк (0, если её не было).
func (t documentTable[M, D]) Delete(ctx context.Context, id int64) dbresult.Result[int64] {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.qualified)

	return observe(t, "delete", time.Now(), dbresult.Wrap(ctx, t.logger, "delete",
		func(ctx context.Context) (int64, error) {
			ctx, cancel := context.WithTimeout(ctx, t.timeout)
			defer cancel()

			res, err := t.db.ExecContext(ctx, query, id)
			if err != nil {
				return 0, fmt.Errorf("delete %s: %w", t.entity, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return 0, fmt.Errorf("rows affected: %w", err)
			}
			return affected, nil
		}))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (t documentTable[M, D]) scan(row rowScanner) (M, error) {
	var (
		zero    M
		id      int64
		payload []byte
	)
	if err := row.Scan(&id, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, err
		}
		return zero, fmt.Errorf("scan %s row: %w", t.entity, err)
	}

	var doc D
	if err := json.Unmarshal(payload, &doc); err != nil {
		return zero, fmt.Errorf("decode %s document %d: %w", t.entity, id, err)
	}
	return t.toModel(id, doc), nil
}

func observe[M, D, T any](t documentTable[M, D], operation string, start time.Time, res dbresult.Result[T]) dbresult.Result[T] {
	t.metrics.Observe(t.entity, operation, res.Kind().String(), time.Since(start))
	return res
}
