package dbresult

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Option — явное «может быть значение» на границе доступа к данным.
type Option[T any] struct {
	value T
	ok    bool
}

// Some оборачивает найденное значение.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

// None означает, что строки нет.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get возвращает значение и признак его наличия.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Wrap выполняет action и переводит исход в Result.
// Ошибка (или паника) логируется и превращается в Failure, наружу не выходит.
func Wrap[T any](ctx context.Context, logger *log.Entry, operation string, action func(context.Context) (T, error)) (res Result[T]) {
	logger = ensureLogger(logger)
	defer func() {
		if p := recover(); p != nil {
			logger.WithField("operation", operation).
				WithError(fmt.Errorf("panic: %v", p)).
				Error("error while executing sql statement")
			res = Failure[T]()
		}
	}()

	value, err := action(ctx)
	if err != nil {
		logger.WithField("operation", operation).WithError(err).Error("error while executing sql statement")
		return Failure[T]()
	}
	return Single(value)
}

// WrapMany выполняет action, возвращающий коллекцию, и переводит исход в Result формы Many.
func WrapMany[T any](ctx context.Context, logger *log.Entry, operation string, action func(context.Context) ([]T, error)) Result[T] {
	rows := Wrap(ctx, logger, operation, action)
	return Match(rows,
		Failure[T],
		Many[T],
		func([][]T) Result[T] { return Failure[T]() },
		func() Result[T] { return Failure[T]() },
	)
}

// SingleOrEmpty отличает «запрос выполнен, строки нет» от «запрос не выполнен».
func SingleOrEmpty[T any](r Result[Option[T]]) Result[T] {
	return Match(r,
		Failure[T],
		func(o Option[T]) Result[T] {
			if v, ok := o.Get(); ok {
				return Single(v)
			}
			return Empty[T]()
		},
		func([]Option[T]) Result[T] { return Failure[T]() },
		Empty[T],
	)
}

// WrapRow выполняет точечный запрос: Wrap + SingleOrEmpty.
func WrapRow[T any](ctx context.Context, logger *log.Entry, operation string, action func(context.Context) (Option[T], error)) Result[T] {
	return SingleOrEmpty(Wrap(ctx, logger, operation, action))
}

func ensureLogger(logger *log.Entry) *log.Entry {
	if logger == nil {
		return log.WithField("component", "dbresult")
	}
	return logger
}
