package customer

// GetResponse — ответ на чтение клиента: Found, NotFound или OperationFailure.
type GetResponse interface{ isGetResponse() }

// InsertResponse — ответ на создание клиента: Inserted или OperationFailure.
type InsertResponse interface{ isInsertResponse() }

// DeleteResponse — ответ на удаление клиента: Deleted или OperationFailure.
type DeleteResponse interface{ isDeleteResponse() }

type Found struct {
	Customer Customer
}

type NotFound struct{}

type Inserted struct {
	ID int64
}

// Deleted — удаление выполнено; Affected может быть 0, если записи не было.
type Deleted struct {
	Affected int64
}

// OperationFailure означает, что хранилище не смогло выполнить операцию.
type OperationFailure struct{}

func (Found) isGetResponse()               {}
func (NotFound) isGetResponse()            {}
func (Inserted) isInsertResponse()         {}
func (Deleted) isDeleteResponse()          {}
func (OperationFailure) isGetResponse()    {}
func (OperationFailure) isInsertResponse() {}
func (OperationFailure) isDeleteResponse() {}
