package boundary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

type customerGetterFunc func(ctx context.Context, id int64) customer.GetResponse

func (f customerGetterFunc) Get(ctx context.Context, id int64) customer.GetResponse { return f(ctx, id) }

type productGetterFunc func(ctx context.Context, ids []int64) product.GetManyResponse

func (f productGetterFunc) GetMany(ctx context.Context, ids []int64) product.GetManyResponse {
	return f(ctx, ids)
}

func TestCustomers_ByID(t *testing.T) {
	john := customer.Customer{ID: 1, Name: "John Doe", Address: "123 Main St", ZipCode: "12345", City: "Anytown", Country: "NY"}

	cases := []struct {
		name string
		resp customer.GetResponse
		want purchaseorder.CustomerLookupResponse
	}{
		{
			name: "found",
			resp: customer.Found{Customer: john},
			want: purchaseorder.CustomerFound{Customer: purchaseorder.CustomerSnapshot{
				ID: 1, Name: "John Doe", Address: "123 Main St", ZipCode: "12345", City: "Anytown", Country: "NY",
			}},
		},
		{name: "not found", resp: customer.NotFound{}, want: purchaseorder.CustomerNotFound{}},
		{name: "failure", resp: customer.OperationFailure{}, want: purchaseorder.CustomerLookupFailure{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID int64
			lookup := NewCustomers(customerGetterFunc(func(_ context.Context, id int64) customer.GetResponse {
				gotID = id
				return tc.resp
			}))
			require.Equal(t, tc.want, lookup.ByID(context.Background(), 1))
			require.EqualValues(t, 1, gotID)
		})
	}
}

func TestProducts_ByIDs(t *testing.T) {
	lookup := NewProducts(productGetterFunc(func(_ context.Context, ids []int64) product.GetManyResponse {
		require.Equal(t, []int64{1, 2}, ids)
		return product.FoundMany{Products: []product.Product{
			{ID: 1, ShortName: "p1", Description: "Product 1", Price: 100},
		}}
	}))

	got := lookup.ByIDs(context.Background(), []int64{1, 2})
	require.Equal(t, purchaseorder.ProductsFound{Products: []purchaseorder.ProductSnapshot{
		{ID: 1, Description: "Product 1", Price: 100},
	}}, got)
}

func TestProducts_ByIDsFailure(t *testing.T) {
	lookup := NewProducts(productGetterFunc(func(context.Context, []int64) product.GetManyResponse {
		return product.OperationFailure{}
	}))
	require.Equal(t, purchaseorder.ProductLookupFailure{}, lookup.ByIDs(context.Background(), []int64{1}))
}
