package purchaseorder

import (
	"context"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
)

// Repository описывает требования к хранилищу заказов.
type Repository interface {
	GetByID(ctx context.Context, id int64) dbresult.Result[Order]
	// Insert сохраняет агрегат одной записью и возвращает присвоенный идентификатор.
	Insert(ctx context.Context, order Order) dbresult.Result[int64]
	Delete(ctx context.Context, id int64) dbresult.Result[int64]
}

// CustomerLookup ищет клиента во внешнем домене.
type CustomerLookup interface {
	ByID(ctx context.Context, id int64) CustomerLookupResponse
}

// ProductLookup ищет товары в каталоге.
type ProductLookup interface {
	// ByIDs возвращает только найденные товары.
	ByIDs(ctx context.Context, ids []int64) ProductLookupResponse
}

// CustomerLookupResponse — CustomerFound, CustomerNotFound или CustomerLookupFailure.
type CustomerLookupResponse interface{ isCustomerLookupResponse() }

// ProductLookupResponse — ProductsFound или ProductLookupFailure.
type ProductLookupResponse interface{ isProductLookupResponse() }

type CustomerFound struct {
	Customer CustomerSnapshot
}

type CustomerNotFound struct{}

type CustomerLookupFailure struct{}

type ProductsFound struct {
	Products []ProductSnapshot
}

type ProductLookupFailure struct{}

func (CustomerFound) isCustomerLookupResponse()         {}
func (CustomerNotFound) isCustomerLookupResponse()      {}
func (CustomerLookupFailure) isCustomerLookupResponse() {}
func (ProductsFound) isProductLookupResponse()          {}
func (ProductLookupFailure) isProductLookupResponse()   {}

// EventPublisher публикует события жизненного цикла заказа. Ошибка публикации
// не влияет на ответ сервиса.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order Order) error
	OrderDeleted(ctx context.Context, id int64) error
}
