package product

// GetResponse: Found, NotFound или OperationFailure.
type GetResponse interface{ isGetResponse() }

// GetManyResponse: FoundMany или OperationFailure.
type GetManyResponse interface{ isGetManyResponse() }

type InsertResponse interface{ isInsertResponse() }

type DeleteResponse interface{ isDeleteResponse() }

type Found struct {
	Product Product
}

type NotFound struct{}

// FoundMany содержит только найденные товары; отсутствующие просто не попадают в список.
type FoundMany struct {
	Products []Product
}

type Inserted struct {
	ID int64
}

type Deleted struct {
	Affected int64
}

type OperationFailure struct{}

func (Found) isGetResponse()                {}
func (NotFound) isGetResponse()             {}
func (FoundMany) isGetManyResponse()        {}
func (Inserted) isInsertResponse()          {}
func (Deleted) isDeleteResponse()           {}
func (OperationFailure) isGetResponse()     {}
func (OperationFailure) isGetManyResponse() {}
func (OperationFailure) isInsertResponse()  {}
func (OperationFailure) isDeleteResponse()  {}
