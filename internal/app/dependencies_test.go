package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/purchasing/internal/httpapi"
)

func quietEntry() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

func TestNewDependencies_Memory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), quietEntry())
	require.NoError(t, err)
	defer deps.Close()

	require.NotNil(t, deps.Services.Customers)
	require.NotNil(t, deps.Services.Products)
	require.NotNil(t, deps.Services.PurchaseOrders)
	require.Nil(t, deps.store)
	require.Nil(t, deps.producer)
}

func TestNewDependencies_PostgresRequiresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres

	_, err := NewDependencies(context.Background(), cfg, quietEntry())
	require.ErrorContains(t, err, "postgres dsn is required")
}

func TestNewDependencies_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	_, err := NewDependencies(context.Background(), cfg, quietEntry())
	require.ErrorContains(t, err, "unsupported storage driver")
}

func TestNewDependencies_PostgresRegistersReadinessCheck(t *testing.T) {
	dsn := os.Getenv("PURCHASING_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("PURCHASING_POSTGRES_TEST_DSN is not set")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn

	deps, err := NewDependencies(context.Background(), cfg, quietEntry())
	require.NoError(t, err)
	defer deps.Close()

	_, checks := deps.Health.Run(context.Background())
	require.Contains(t, checks, "postgres")
}

// Сквозной сценарий на in-memory хранилище: клиент, товары, заказ и его чтение.
func TestMemoryStack_PurchaseOrderFlow(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), quietEntry())
	require.NoError(t, err)
	defer deps.Close()

	srv := httptest.NewServer(httpapi.NewRouter(deps.Services, httpapi.Options{Logger: quietEntry()}))
	defer srv.Close()

	customerID := postID(t, srv.URL+"/public/customers", map[string]any{
		"name": "John Doe", "address": "123 Main St", "zip_code": "12345", "city": "Anytown", "country": "NY",
	})
	first := postID(t, srv.URL+"/public/products", map[string]any{
		"short_name": "p1", "description": "Product 1", "properties": map[string]string{"color": "red"}, "price": 100,
	})
	second := postID(t, srv.URL+"/public/products", map[string]any{
		"short_name": "p2", "description": "Product 2", "properties": map[string]string{"size": "L"}, "price": 200,
	})

	orderID := postID(t, srv.URL+"/public/purchase-orders", map[string]any{
		"customer_id": customerID,
		"items": []map[string]any{
			{"id": 1, "product_id": first, "quantity": 1},
			{"id": 2, "product_id": second, "quantity": 1},
		},
	})

	resp, err := http.Get(srv.URL + "/public/purchase-orders/" + itoa(orderID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			CustomerName string `json:"customer_name"`
			TotalPrice   int64  `json:"total_price"`
			Items        []struct {
				ProductName string `json:"product_name"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "John Doe", body.Data.CustomerName)
	require.EqualValues(t, 300, body.Data.TotalPrice)
	require.Len(t, body.Data.Items, 2)
	require.Equal(t, "Product 1", body.Data.Items[0].ProductName)

	missing := post(t, srv.URL+"/public/purchase-orders", map[string]any{
		"customer_id": customerID,
		"items":       []map[string]any{{"id": 1, "product_id": second + 10, "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, missing.StatusCode)
	missing.Body.Close()
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func postID(t *testing.T, url string, body any) int64 {
	t.Helper()
	resp := post(t, url, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data httpapi.IDResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Positive(t, out.Data.ID)
	return out.Data.ID
}
