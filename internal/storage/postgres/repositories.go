package postgres

import (
	"context"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

// CustomerRepository работает с таблицей customer.customer.
type CustomerRepository struct {
	documentTable[customer.Customer, customerDocument]
}

// NewCustomerRepository создаёт PostgreSQL-реализацию customer.Repository.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{newDocumentTable(store,
		"customer", "customer.customer", "customer_json",
		toCustomerDocument, customerFromDocument,
	)}
}

// ProductRepository работает с таблицей product.product.
type ProductRepository struct {
	documentTable[product.Product, productDocument]
}

// NewProductRepository создаёт PostgreSQL-реализацию product.Repository.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{newDocumentTable(store,
		"product", "product.product", "product_json",
		toProductDocument, productFromDocument,
	)}
}

// GetByIDs возвращает найденные товары (Many, возможно пустой).
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) dbresult.Result[product.Product] {
	return r.getByIDs(ctx, ids)
}

// PurchaseOrderRepository — таблица purchase_order.purchase_order. Заказ целиком лежит в одном документе.
type PurchaseOrderRepository struct {
	documentTable[purchaseorder.Order, purchaseOrderDocument]
}

// NewPurchaseOrderRepository создаёт PostgreSQL-реализацию purchaseorder.Repository.
func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{newDocumentTable(store,
		"purchase_order", "purchase_order.purchase_order", "purchase_order_json",
		toPurchaseOrderDocument, purchaseOrderFromDocument,
	)}
}

var (
	_ customer.Repository      = (*CustomerRepository)(nil)
	_ product.Repository       = (*ProductRepository)(nil)
	_ purchaseorder.Repository = (*PurchaseOrderRepository)(nil)
)
