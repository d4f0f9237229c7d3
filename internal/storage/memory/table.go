// Package memory хранит данные в памяти процесса для локальной разработки и тестов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
)

// Операции, для которых можно внедрить сбой через Fail.
const (
	OpGetByID  = "get_by_id"
	OpGetByIDs = "get_by_ids"
	OpInsert   = "insert"
	OpDelete   = "delete"
)

// Options — общие зависимости in-memory репозиториев.
type Options struct {
	Metrics *metrics.StorageMetrics
	Logger  *log.Entry
}

// table хранит копии моделей под последовательными идентификаторами.
// Запись и каждое чтение проходят через clone, вызывающий не разделяет память с хранилищем.
// Идентификаторы не переиспользуются после удаления.
type table[M any] struct {
	mu      sync.RWMutex
	entity  string
	nextID  int64
	rows    map[int64]M
	faults  map[string]error
	withID  func(M, int64) M
	clone   func(M) M
	metrics *metrics.StorageMetrics
	logger  *log.Entry
}

func newTable[M any](entity string, opts Options, withID func(M, int64) M, clone func(M) M) *table[M] {
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "memory-store")
	}
	return &table[M]{
		entity:  entity,
		rows:    make(map[int64]M),
		faults:  make(map[string]error),
		withID:  withID,
		clone:   clone,
		metrics: opts.Metrics,
		logger:  logger.WithFields(log.Fields{"layer": "repository", "entity": entity}),
	}
}

// Fail заставляет операцию возвращать err, пока не вызван Recover.
func (t *table[M]) Fail(operation string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faults[operation] = err
}

// Recover снимает все внедрённые сбои.
func (t *table[M]) Recover() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faults = make(map[string]error)
}

func (t *table[M]) GetByID(ctx context.Context, id int64) dbresult.Result[M] {
	start := time.Now()
	res := dbresult.WrapRow(ctx, t.logger, OpGetByID, func(ctx context.Context) (dbresult.Option[M], error) {
		t.mu.RLock()
		defer t.mu.RUnlock()

		if err := t.check(ctx, OpGetByID); err != nil {
			return dbresult.None[M](), err
		}
		row, ok := t.rows[id]
		if !ok {
			return dbresult.None[M](), nil
		}
		return dbresult.Some(t.clone(row)), nil
	})
	return observe(t, OpGetByID, start, res)
}

func (t *table[M]) getByIDs(ctx context.Context, ids []int64) dbresult.Result[M] {
	start := time.Now()
	res := dbresult.WrapMany(ctx, t.logger, OpGetByIDs, func(ctx context.Context) ([]M, error) {
		t.mu.RLock()
		defer t.mu.RUnlock()

		if err := t.check(ctx, OpGetByIDs); err != nil {
			return nil, err
		}

		unique := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := t.rows[id]; ok {
				unique[id] = struct{}{}
			}
		}
		keys := make([]int64, 0, len(unique))
		for id := range unique {
			keys = append(keys, id)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		found := make([]M, 0, len(keys))
		for _, id := range keys {
			found = append(found, t.clone(t.rows[id]))
		}
		return found, nil
	})
	return observe(t, OpGetByIDs, start, res)
}

func (t *table[M]) Insert(ctx context.Context, model M) dbresult.Result[int64] {
	start := time.Now()
	res := dbresult.Wrap(ctx, t.logger, OpInsert, func(ctx context.Context) (int64, error) {
		t.mu.Lock()
		defer t.mu.Unlock()

		if err := t.check(ctx, OpInsert); err != nil {
			return 0, err
		}
		t.nextID++
		t.rows[t.nextID] = t.withID(t.clone(model), t.nextID)
		return t.nextID, nil
	})
	return observe(t, OpInsert, start, res)
}

func (t *table[M]) Delete(ctx context.Context, id int64) dbresult.Result[int64] {
	start := time.Now()
	res := dbresult.Wrap(ctx, t.logger, OpDelete, func(ctx context.Context) (int64, error) {
		t.mu.Lock()
		defer t.mu.Unlock()

		if err := t.check(ctx, OpDelete); err != nil {
			return 0, err
		}
		if _, ok := t.rows[id]; !ok {
			return 0, nil
		}
		delete(t.rows, id)
		return 1, nil
	})
	return observe(t, OpDelete, start, res)
}

// Len возвращает число хранимых строк.
func (t *table[M]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// check вызывается под блокировкой.
func (t *table[M]) check(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.faults[operation]
}

func observe[M, T any](t *table[M], operation string, start time.Time, res dbresult.Result[T]) dbresult.Result[T] {
	t.metrics.Observe(t.entity, operation, res.Kind().String(), time.Since(start))
	return res
}
