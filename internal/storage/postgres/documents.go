package postgres

import (
	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

// Документы хранятся без идентификатора: id живёт в отдельной колонке.

type customerDocument struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func toCustomerDocument(c customer.Customer) customerDocument {
	return customerDocument{
		Name:    c.Name,
		Address: c.Address,
		ZipCode: c.ZipCode,
		City:    c.City,
		Country: c.Country,
	}
}

func customerFromDocument(id int64, d customerDocument) customer.Customer {
	return customer.Customer{
		ID:      id,
		Name:    d.Name,
		Address: d.Address,
		ZipCode: d.ZipCode,
		City:    d.City,
		Country: d.Country,
	}
}

type productDocument struct {
	ShortName   string            `json:"short_name"`
	Description string            `json:"description"`
	Properties  map[string]string `json:"properties"`
	Price       int64             `json:"price"`
}

func toProductDocument(p product.Product) productDocument {
	return productDocument{
		ShortName:   p.ShortName,
		Description: p.Description,
		Properties:  p.Properties,
		Price:       p.Price,
	}
}

func productFromDocument(id int64, d productDocument) product.Product {
	properties := d.Properties
	if properties == nil {
		properties = map[string]string{}
	}
	return product.Product{
		ID:          id,
		ShortName:   d.ShortName,
		Description: d.Description,
		Properties:  properties,
		Price:       d.Price,
	}
}

type purchaseOrderDocument struct {
	Customer orderCustomerDocument `json:"customer"`
	Items    []orderItemDocument   `json:"items"`
}

type orderCustomerDocument struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type orderItemDocument struct {
	ID       int64                `json:"id"`
	Product  orderProductDocument `json:"product"`
	Quantity int                  `json:"quantity"`
}

// Name снимка товара хранит его описание на момент заказа.
type orderProductDocument struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func toPurchaseOrderDocument(o purchaseorder.Order) purchaseOrderDocument {
	items := make([]orderItemDocument, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemDocument{
			ID: item.LineID,
			Product: orderProductDocument{
				ID:    item.Product.ID,
				Name:  item.Product.Description,
				Price: item.Product.Price,
			},
			Quantity: item.Quantity,
		})
	}
	c := o.Customer
	return purchaseOrderDocument{
		Customer: orderCustomerDocument{
			ID:      c.ID,
			Name:    c.Name,
			Address: c.Address,
			ZipCode: c.ZipCode,
			City:    c.City,
			Country: c.Country,
		},
		Items: items,
	}
}

func purchaseOrderFromDocument(id int64, d purchaseOrderDocument) purchaseorder.Order {
	items := make([]purchaseorder.LineItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, purchaseorder.LineItem{
			LineID: item.ID,
			Product: purchaseorder.ProductSnapshot{
				ID:          item.Product.ID,
				Description: item.Product.Name,
				Price:       item.Product.Price,
			},
			Quantity: item.Quantity,
		})
	}
	c := d.Customer
	return purchaseorder.Order{
		ID: id,
		Customer: purchaseorder.CustomerSnapshot{
			ID:      c.ID,
			Name:    c.Name,
			Address: c.Address,
			ZipCode: c.ZipCode,
			City:    c.City,
			Country: c.Country,
		},
		Items: items,
	}
}
