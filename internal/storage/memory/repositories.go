package memory

import (
	"context"
	"maps"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

// CustomerRepository — in-memory customer.Repository.
type CustomerRepository struct {
	*table[customer.Customer]
}

// NewCustomerRepository создаёт пустое хранилище клиентов.
func NewCustomerRepository(opts Options) *CustomerRepository {
	return &CustomerRepository{newTable("customer", opts, func(c customer.Customer, id int64) customer.Customer {
		c.ID = id
		return c
	}, func(c customer.Customer) customer.Customer { return c })}
}

// ProductRepository реализует product.Repository в памяти.
type ProductRepository struct {
	*table[product.Product]
}

// NewProductRepository создаёт пустой каталог.
func NewProductRepository(opts Options) *ProductRepository {
	return &ProductRepository{newTable("product", opts, func(p product.Product, id int64) product.Product {
		p.ID = id
		return p
	}, cloneProduct)}
}

// GetByIDs возвращает найденные товары в порядке возрастания id.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) dbresult.Result[product.Product] {
	return r.getByIDs(ctx, ids)
}

// PurchaseOrderRepository реализует purchaseorder.Repository в памяти.
type PurchaseOrderRepository struct {
	*table[purchaseorder.Order]
}

// NewPurchaseOrderRepository создаёт пустое хранилище заказов.
func NewPurchaseOrderRepository(opts Options) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{newTable("purchase_order", opts, func(o purchaseorder.Order, id int64) purchaseorder.Order {
		o.ID = id
		return o
	}, cloneOrder)}
}

// cloneProduct копирует Properties; nil заменяется пустой картой.
func cloneProduct(p product.Product) product.Product {
	p.Properties = maps.Clone(p.Properties)
	if p.Properties == nil {
		p.Properties = map[string]string{}
	}
	return p
}

// cloneOrder копирует позиции; снимки внутри позиций передаются по значению.
func cloneOrder(o purchaseorder.Order) purchaseorder.Order {
	o.Items = append([]purchaseorder.LineItem(nil), o.Items...)
	return o
}

var (
	_ customer.Repository      = (*CustomerRepository)(nil)
	_ product.Repository       = (*ProductRepository)(nil)
	_ purchaseorder.Repository = (*PurchaseOrderRepository)(nil)
)
