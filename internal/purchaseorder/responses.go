package purchaseorder

// GetResponse: Found, NotFound или OperationFailure.
type GetResponse interface{ isGetResponse() }

// InsertResponse — Inserted, NotInsertedCustomerNotFound или NotInsertedProductsNotFound.
// Сбой записи сюда не входит: он возвращается ошибкой ErrOrderNotInserted.
type InsertResponse interface{ isInsertResponse() }

// DeleteResponse: Deleted или OperationFailure.
type DeleteResponse interface{ isDeleteResponse() }

type Found struct {
	Order Order
}

type NotFound struct{}

type Inserted struct {
	ID int64
}

// NotInsertedCustomerNotFound — клиент не найден или его не удалось получить.
type NotInsertedCustomerNotFound struct{}

// NotInsertedProductsNotFound содержит идентификаторы товаров, которые не подтверждены.
// Если каталог недоступен, здесь все запрошенные идентификаторы.
type NotInsertedProductsNotFound struct {
	ProductIDs []int64
}

type Deleted struct {
	Affected int64
}

type OperationFailure struct{}

func (Found) isGetResponse()                          {}
func (NotFound) isGetResponse()                       {}
func (Inserted) isInsertResponse()                    {}
func (NotInsertedCustomerNotFound) isInsertResponse() {}
func (NotInsertedProductsNotFound) isInsertResponse() {}
func (Deleted) isDeleteResponse()                     {}
func (OperationFailure) isGetResponse()               {}
func (OperationFailure) isDeleteResponse()            {}
