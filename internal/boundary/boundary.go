// Package boundary связывает домен заказов с доменами клиентов и каталога.
package boundary

import (
	"context"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

// CustomerGetter описывает часть customer.Service, нужную заказам.
type CustomerGetter interface {
	Get(ctx context.Context, id int64) customer.GetResponse
}

// ProductGetter описывает часть product.Service, нужную заказам.
type ProductGetter interface {
	GetMany(ctx context.Context, ids []int64) product.GetManyResponse
}

// Customers реализует purchaseorder.CustomerLookup поверх сервиса клиентов.
type Customers struct {
	svc CustomerGetter
}

// NewCustomers оборачивает сервис клиентов.
func NewCustomers(svc CustomerGetter) *Customers {
	return &Customers{svc: svc}
}

// ByID переводит ответ сервиса клиентов в ответ поиска для заказов.
func (c *Customers) ByID(ctx context.Context, id int64) purchaseorder.CustomerLookupResponse {
	switch resp := c.svc.Get(ctx, id).(type) {
	case customer.Found:
		return purchaseorder.CustomerFound{Customer: customerSnapshot(resp.Customer)}
	case customer.NotFound:
		return purchaseorder.CustomerNotFound{}
	default:
		return purchaseorder.CustomerLookupFailure{}
	}
}

// Products реализует purchaseorder.ProductLookup поверх каталога.
type Products struct {
	svc ProductGetter
}

// NewProducts оборачивает сервис товаров.
func NewProducts(svc ProductGetter) *Products {
	return &Products{svc: svc}
}

// ByIDs возвращает снимки найденных товаров.
func (p *Products) ByIDs(ctx context.Context, ids []int64) purchaseorder.ProductLookupResponse {
	resp, ok := p.svc.GetMany(ctx, ids).(product.FoundMany)
	if !ok {
		return purchaseorder.ProductLookupFailure{}
	}

	snapshots := make([]purchaseorder.ProductSnapshot, 0, len(resp.Products))
	for _, item := range resp.Products {
		snapshots = append(snapshots, purchaseorder.ProductSnapshot{
			ID:          item.ID,
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return purchaseorder.ProductsFound{Products: snapshots}
}

func customerSnapshot(c customer.Customer) purchaseorder.CustomerSnapshot {
	return purchaseorder.CustomerSnapshot{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		ZipCode: c.ZipCode,
		City:    c.City,
		Country: c.Country,
	}
}

var (
	_ purchaseorder.CustomerLookup = (*Customers)(nil)
	_ purchaseorder.ProductLookup  = (*Products)(nil)
)
