// Package customer содержит доменную модель клиента и сервис над её репозиторием.
package customer

import (
	"context"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
)

// Customer — карточка клиента. ID == 0 означает, что запись ещё не сохранена.
type Customer struct {
	ID      int64
	Name    string
	Address string
	ZipCode string
	City    string
	Country string
}

// Repository описывает требования к хранилищу клиентов.
type Repository interface {
	// GetByID возвращает Single, Empty (нет строки) или Failure.
	GetByID(ctx context.Context, id int64) dbresult.Result[Customer]
	// Insert возвращает сгенерированный хранилищем идентификатор.
	Insert(ctx context.Context, c Customer) dbresult.Result[int64]
	// Delete возвращает количество удалённых строк.
	Delete(ctx context.Context, id int64) dbresult.Result[int64]
}
