package postgres

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
)

func kindOf[T any](r dbresult.Result[T]) dbresult.Kind { return r.Kind() }

func single[T any](t *testing.T, r dbresult.Result[T]) T {
	t.Helper()
	v := dbresult.Match(r,
		func() *T { return nil },
		func(v T) *T { return &v },
		func([]T) *T { return nil },
		func() *T { return nil },
	)
	require.NotNilf(t, v, "expected single, got %s", r.Kind())
	return *v
}

func many[T any](t *testing.T, r dbresult.Result[T]) []T {
	t.Helper()
	vs := dbresult.Match(r,
		func() []T { return nil },
		func(T) []T { return nil },
		func(vs []T) []T { return vs },
		func() []T { return nil },
	)
	require.NotNilf(t, vs, "expected many, got %s", r.Kind())
	return vs
}

func TestCustomerRepository_PostgresRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	john := customer.Customer{Name: "John Doe", Address: "123 Main St", ZipCode: "12345", City: "Anytown", Country: "NY"}

	id := single(t, repo.Insert(ctx, john))
	require.Positive(t, id)

	got := single(t, repo.GetByID(ctx, id))
	john.ID = id
	require.Equal(t, john, got)

	require.Equal(t, dbresult.KindEmpty, kindOf(repo.GetByID(ctx, id+1000)))

	require.EqualValues(t, 1, single(t, repo.Delete(ctx, id)))
	require.EqualValues(t, 0, single(t, repo.Delete(ctx, id)))
	require.Equal(t, dbresult.KindEmpty, kindOf(repo.GetByID(ctx, id)))

	next := single(t, repo.Insert(ctx, john))
	require.Greater(t, next, id, "ids are never reused")
}

func TestProductRepository_PostgresGetByIDs(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	first := single(t, repo.Insert(ctx, product.Product{
		ShortName: "p1", Description: "Product 1", Properties: map[string]string{"color": "red"}, Price: 100,
	}))
	second := single(t, repo.Insert(ctx, product.Product{
		ShortName: "p2", Description: "Product 2", Properties: map[string]string{"size": "L"}, Price: 200,
	}))

	found := many(t, repo.GetByIDs(ctx, []int64{first, second, second + 100}))
	require.Len(t, found, 2)
	require.Equal(t, first, found[0].ID)
	require.Equal(t, "red", found[0].Properties["color"])
	require.EqualValues(t, 200, found[1].Price)

	none := many(t, repo.GetByIDs(ctx, []int64{second + 100}))
	require.Empty(t, none)

	require.Empty(t, many(t, repo.GetByIDs(ctx, nil)))
}

func TestPurchaseOrderRepository_PostgresDocumentRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewPurchaseOrderRepository(store)
	ctx := context.Background()

	order := purchaseorder.Order{
		Customer: purchaseorder.CustomerSnapshot{ID: 1, Name: "John Doe", Address: "123 Main St", ZipCode: "12345", City: "Anytown", Country: "NY"},
		Items: []purchaseorder.LineItem{
			{LineID: 1, Product: purchaseorder.ProductSnapshot{ID: 1, Description: "Product 1", Price: 100}, Quantity: 1},
			{LineID: 2, Product: purchaseorder.ProductSnapshot{ID: 2, Description: "Product 2", Price: 200}, Quantity: 1},
		},
	}

	id := single(t, repo.Insert(ctx, order))
	got := single(t, repo.GetByID(ctx, id))

	order.ID = id
	require.Equal(t, order, got)
	require.EqualValues(t, 300, got.TotalPrice())
}

func TestRepositories_PostgresFailureIsResultNotPanic(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	registry := prometheus.NewRegistry()
	store.metrics = metrics.NewStorageMetricsWithRegisterer(registry)
	repo := NewCustomerRepository(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.True(t, repo.Insert(ctx, customer.Customer{Name: "x"}).IsFailure())
	require.True(t, repo.GetByID(ctx, 1).IsFailure())

	require.Equal(t, 2, testutil.CollectAndCount(registry, "purchasing_storage_results_total"))
}
