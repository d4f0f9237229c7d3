package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
	"github.com/vladislavdragonenkov/purchasing/internal/validation"
)

type purchaseOrderItemRequest struct {
	ID        int64 `json:"id" validate:"gt=0"`
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"min=1,max=20"`
}

type purchaseOrderRequest struct {
	CustomerID int64                      `json:"customer_id" validate:"gt=0"`
	Items      []purchaseOrderItemRequest `json:"items" validate:"min=1,dive"`
}

type purchaseOrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type purchaseOrderResponse struct {
	ID           int64                       `json:"id"`
	CustomerID   int64                       `json:"customer_id"`
	CustomerName string                      `json:"customer_name"`
	Items        []purchaseOrderItemResponse `json:"items"`
	TotalPrice   int64                       `json:"total_price"`
}

// Сообщения бизнес-отказов при создании заказа.
const (
	ProblemCustomerNotFound = "CUSTOMER_NOT_FOUND"
	ProblemProductsNotFound = "PRODUCTS_NOT_FOUND"
)

func toPurchaseOrderResponse(o purchaseorder.Order) purchaseOrderResponse {
	items := make([]purchaseOrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, purchaseOrderItemResponse{
			ID:          item.LineID,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Description,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
	}
	return purchaseOrderResponse{
		ID:           o.ID,
		CustomerID:   o.Customer.ID,
		CustomerName: o.Customer.Name,
		Items:        items,
		TotalPrice:   o.TotalPrice(),
	}
}

func (h *handlers) getPurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	switch resp := h.svc.PurchaseOrders.Get(c.Request.Context(), id).(type) {
	case purchaseorder.Found:
		writeSuccess(c, http.StatusOK, toPurchaseOrderResponse(resp.Order))
	case purchaseorder.NotFound:
		writeNotFound(c, "purchase order")
	default:
		writeOperationFailure(c)
	}
}

func (h *handlers) insertPurchaseOrder(c *gin.Context) {
	req, ok := bind(c, h.rules.purchaseOrder)
	if !ok {
		return
	}

	items := make([]purchaseorder.LineItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, purchaseorder.LineItemRequest{
			LineID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := h.svc.PurchaseOrders.Insert(c.Request.Context(), purchaseorder.NewOrder{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		h.logger.WithError(err).WithFields(log.Fields{
			"request_id":  c.GetString(requestIDKey),
			"customer_id": req.CustomerID,
		}).Error("purchase order was not inserted")
		writeError(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	switch r := resp.(type) {
	case purchaseorder.Inserted:
		writeSuccess(c, http.StatusOK, IDResponse{ID: r.ID})
	case purchaseorder.NotInsertedCustomerNotFound:
		writeProblem(c, validation.Problem{"customer_id": {ProblemCustomerNotFound}})
	case purchaseorder.NotInsertedProductsNotFound:
		writeProblem(c, validation.Problem{"items": {productsNotFound(r.ProductIDs)}})
	default:
		writeError(c, http.StatusInternalServerError, CodeInternal, fmt.Sprintf("unexpected response %T", resp))
	}
}

func (h *handlers) deletePurchaseOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, ok := h.svc.PurchaseOrders.Delete(c.Request.Context(), id).(purchaseorder.Deleted); ok {
		c.Status(http.StatusAccepted)
		return
	}
	writeOperationFailure(c)
}

// productsNotFound форматирует "PRODUCTS_NOT_FOUND (2, 3)".
func productsNotFound(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return fmt.Sprintf("%s (%s)", ProblemProductsNotFound, strings.Join(parts, ", "))
}
