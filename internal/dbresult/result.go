// Package dbresult описывает замкнутый набор результатов обращения к хранилищу.
//
// Результат всегда находится ровно в одном из состояний: Failure, Single, Many, Empty.
// Разбор результата выполняется через Match, который требует обработчик для каждого
// состояния, поэтому пропущенная ветка обнаруживается компилятором.
package dbresult

// Kind — тег варианта результата.
type Kind uint8

const (
	// KindFailure — операция не выполнена (инфраструктурная ошибка, можно повторить).
	KindFailure Kind = iota + 1
	// KindSingle — операция вернула одну строку.
	KindSingle
	// KindMany — операция вернула коллекцию (возможно пустую).
	KindMany
	// KindEmpty — запрос выполнен, строки нет. Только для точечных запросов.
	KindEmpty
)

// String возвращает имя варианта для логов и метрик.
func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindSingle:
		return "single"
	case KindMany:
		return "many"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Result — тегированный результат одного обращения к хранилищу.
// Нулевое значение трактуется как Failure.
type Result[T any] struct {
	kind   Kind
	value  T
	values []T
}

// Failure возвращает неуспешный результат.
func Failure[T any]() Result[T] {
	return Result[T]{kind: KindFailure}
}

// Single оборачивает одно значение.
func Single[T any](value T) Result[T] {
	return Result[T]{kind: KindSingle, value: value}
}

// Many оборачивает коллекцию. nil превращается в пустой срез.
func Many[T any](values []T) Result[T] {
	if values == nil {
		values = []T{}
	}
	return Result[T]{kind: KindMany, values: values}
}

// Empty возвращает успешный результат без строки.
func Empty[T any]() Result[T] {
	return Result[T]{kind: KindEmpty}
}

// Kind возвращает тег варианта.
func (r Result[T]) Kind() Kind {
	if r.kind == 0 {
		return KindFailure
	}
	return r.kind
}

// IsFailure сообщает, что операция не выполнена.
func (r Result[T]) IsFailure() bool {
	return r.Kind() == KindFailure
}

// Match разбирает результат, вызывая обработчик ровно одного варианта.
func Match[T, R any](
	r Result[T],
	onFailure func() R,
	onSingle func(T) R,
	onMany func([]T) R,
	onEmpty func() R,
) R {
	switch r.Kind() {
	case KindSingle:
		return onSingle(r.value)
	case KindMany:
		return onMany(r.values)
	case KindEmpty:
		return onEmpty()
	default:
		return onFailure()
	}
}

// MapSingle применяет f к значению Single; Empty сохраняется.
// Failure передаётся без изменений.
func MapSingle[T, U any](r Result[T], f func(T) U) Result[U] {
	return mapResult(r, f)
}

// MapMany применяет f к каждому элементу Many. Failure передаётся без изменений.
func MapMany[T, U any](r Result[T], f func(T) U) Result[U] {
	return mapResult(r, f)
}

// mapResult сохраняет форму результата и трогает только успешные ветки.
func mapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	return Match(r,
		Failure[U],
		func(v T) Result[U] { return Single(f(v)) },
		func(vs []T) Result[U] { return Many(mapSlice(vs, f)) },
		Empty[U],
	)
}

func mapSlice[T, U any](vs []T, f func(T) U) []U {
	out := make([]U, 0, len(vs))
	for _, v := range vs {
		out = append(out, f(v))
	}
	return out
}
