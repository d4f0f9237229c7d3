// Package httpapi обслуживает публичный HTTP API (/public) поверх доменных сервисов.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
	"github.com/vladislavdragonenkov/purchasing/internal/validation"
)

// CustomerService — операции домена клиентов.
type CustomerService interface {
	Get(ctx context.Context, id int64) customer.GetResponse
	Insert(ctx context.Context, c customer.Customer) customer.InsertResponse
	Delete(ctx context.Context, id int64) customer.DeleteResponse
}

// ProductService — операции каталога.
type ProductService interface {
	Get(ctx context.Context, id int64) product.GetResponse
	GetMany(ctx context.Context, ids []int64) product.GetManyResponse
	Insert(ctx context.Context, p product.Product) product.InsertResponse
	Delete(ctx context.Context, id int64) product.DeleteResponse
}

// PurchaseOrderService — операции домена заказов.
type PurchaseOrderService interface {
	Get(ctx context.Context, id int64) purchaseorder.GetResponse
	Insert(ctx context.Context, req purchaseorder.NewOrder) (purchaseorder.InsertResponse, error)
	Delete(ctx context.Context, id int64) purchaseorder.DeleteResponse
}

// Services содержит доменные сервисы, обслуживаемые API.
type Services struct {
	Customers      CustomerService
	Products       ProductService
	PurchaseOrders PurchaseOrderService
}

// Options настраивает роутер.
type Options struct {
	// AllowedOrigins — CORS; пусто означает без CORS-заголовков.
	AllowedOrigins []string
	Logger         *log.Entry
}

// rules собираются один раз на роутер.
type rules struct {
	customer      validation.Rule[customerRequest]
	product       validation.Rule[productRequest]
	purchaseOrder validation.Rule[purchaseOrderRequest]
}

func newRules() rules {
	v := validation.New()
	return rules{
		customer:      validation.For[customerRequest](v),
		product:       validation.For[productRequest](v),
		purchaseOrder: validation.For[purchaseOrderRequest](v),
	}
}

type handlers struct {
	svc    Services
	rules  rules
	logger *log.Entry
}

// NewRouter собирает gin.Engine с маршрутами /public.
func NewRouter(svc Services, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(requestID(), accessLog(logger), recovery(logger))
	if len(opts.AllowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.AllowedOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, RequestIDHeader)
		cfg.ExposeHeaders = []string{RequestIDHeader}
		cfg.MaxAge = 12 * time.Hour
		r.Use(cors.New(cfg))
	}

	h := &handlers{svc: svc, rules: newRules(), logger: logger}
	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, CodeNotFound, "route not found")
	})

	public := r.Group("/public")

	customers := public.Group("/customers")
	customers.GET("/:id", h.getCustomer)
	customers.POST("", h.insertCustomer)
	customers.DELETE("/:id", h.deleteCustomer)

	products := public.Group("/products")
	products.GET("", h.getProducts)
	products.GET("/:id", h.getProduct)
	products.POST("", h.insertProduct)
	products.DELETE("/:id", h.deleteProduct)

	orders := public.Group("/purchase-orders")
	orders.GET("/:id", h.getPurchaseOrder)
	orders.POST("", h.insertPurchaseOrder)
	orders.DELETE("/:id", h.deletePurchaseOrder)

	return r
}

// pathID разбирает :id; при ошибке ответ уже записан.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, CodeInvalidID, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// bind декодирует JSON-тело и проверяет его правилом rule.
func bind[T any](c *gin.Context, rule validation.Rule[T]) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := "request body must be valid JSON"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		writeError(c, http.StatusBadRequest, CodeInvalidBody, msg)
		return req, false
	}
	if problem := rule(req); !problem.Empty() {
		writeProblem(c, problem)
		return req, false
	}
	return req, true
}
