// Package product содержит каталог товаров: модель, порт хранилища и сервис.
package product

import (
	"context"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
)

// Product — позиция каталога. Price хранится в минимальных денежных единицах.
type Product struct {
	ID          int64
	ShortName   string
	Description string
	Properties  map[string]string
	Price       int64
}

// Repository описывает требования к хранилищу товаров.
type Repository interface {
	GetByID(ctx context.Context, id int64) dbresult.Result[Product]
	// GetByIDs возвращает Many (возможно пустой) или Failure; Empty не используется.
	GetByIDs(ctx context.Context, ids []int64) dbresult.Result[Product]
	Insert(ctx context.Context, p Product) dbresult.Result[int64]
	Delete(ctx context.Context, id int64) dbresult.Result[int64]
}
