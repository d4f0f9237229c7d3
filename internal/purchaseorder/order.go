// Package purchaseorder собирает заказы на закупку из снимков клиента и товаров.
package purchaseorder

// CustomerSnapshot — копия данных клиента на момент создания заказа.
type CustomerSnapshot struct {
	ID      int64
	Name    string
	Address string
	ZipCode string
	City    string
	Country string
}

// ProductSnapshot — копия данных товара на момент создания заказа.
type ProductSnapshot struct {
	ID          int64
	Description string
	// Price — цена за единицу в минимальных денежных единицах.
	Price int64
}

// LineItemRequest — позиция из запроса. LineID задаёт клиент, это не ключ хранилища.
type LineItemRequest struct {
	LineID    int64
	ProductID int64
	Quantity  int
}

// NewOrder описывает запрос на создание заказа.
type NewOrder struct {
	CustomerID int64
	Items      []LineItemRequest
}

// ProductIDs возвращает идентификаторы товаров без повторов в порядке первого появления.
func (n NewOrder) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(n.Items))
	ids := make([]int64, 0, len(n.Items))
	for _, item := range n.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// LineItem содержит позицию заказа с разрешённым товаром.
type LineItem struct {
	LineID   int64
	Product  ProductSnapshot
	Quantity int
}

// Total возвращает цену * количество.
func (li LineItem) Total() int64 {
	return li.Product.Price * int64(li.Quantity)
}

// Order — агрегат заказа. ID == 0, пока хранилище не присвоило идентификатор.
type Order struct {
	ID       int64
	Customer CustomerSnapshot
	Items    []LineItem
}

// TotalPrice каждый раз пересчитывается по позициям и нигде не хранится.
func (o Order) TotalPrice() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Total()
	}
	return total
}

// assemble строит агрегат в порядке позиций запроса.
// Вызывается только после проверки, что все товары найдены.
func assemble(customer CustomerSnapshot, items []LineItemRequest, products []ProductSnapshot) Order {
	byID := make(map[int64]ProductSnapshot, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItem{
			LineID:   item.LineID,
			Product:  byID[item.ProductID],
			Quantity: item.Quantity,
		})
	}

	return Order{Customer: customer, Items: lines}
}

// missingProducts возвращает requested − found по идентификатору.
func missingProducts(requested []int64, found []ProductSnapshot) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, p := range found {
		present[p.ID] = struct{}{}
	}

	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
