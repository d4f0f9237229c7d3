package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/purchasing/internal/product"
)

type productRequest struct {
	ShortName   string            `json:"short_name" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Properties  map[string]string `json:"properties" validate:"min=1,dive,keys,required,endkeys,required"`
	Price       int64             `json:"price" validate:"gt=10"`
}

type productResponse struct {
	ID          int64             `json:"id"`
	ShortName   string            `json:"short_name"`
	Description string            `json:"description"`
	Properties  map[string]string `json:"properties"`
	Price       int64             `json:"price"`
}

func toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		ShortName:   p.ShortName,
		Description: p.Description,
		Properties:  p.Properties,
		Price:       p.Price,
	}
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	switch resp := h.svc.Products.Get(c.Request.Context(), id).(type) {
	case product.Found:
		writeSuccess(c, http.StatusOK, toProductResponse(resp.Product))
	case product.NotFound:
		writeNotFound(c, "product")
	default:
		writeOperationFailure(c)
	}
}

// getProducts обслуживает GET /public/products?ids=1,2,3 и возвращает только найденные товары.
func (h *handlers) getProducts(c *gin.Context) {
	ids, ok := queryIDs(c, "ids")
	if !ok {
		return
	}

	resp, ok := h.svc.Products.GetMany(c.Request.Context(), ids).(product.FoundMany)
	if !ok {
		writeOperationFailure(c)
		return
	}
	out := make([]productResponse, 0, len(resp.Products))
	for _, p := range resp.Products {
		out = append(out, toProductResponse(p))
	}
	writeSuccess(c, http.StatusOK, out)
}

func (h *handlers) insertProduct(c *gin.Context) {
	req, ok := bind(c, h.rules.product)
	if !ok {
		return
	}

	resp := h.svc.Products.Insert(c.Request.Context(), product.Product{
		ShortName:   req.ShortName,
		Description: req.Description,
		Properties:  req.Properties,
		Price:       req.Price,
	})
	if inserted, ok := resp.(product.Inserted); ok {
		writeSuccess(c, http.StatusOK, IDResponse{ID: inserted.ID})
		return
	}
	writeOperationFailure(c)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, ok := h.svc.Products.Delete(c.Request.Context(), id).(product.Deleted); ok {
		c.Status(http.StatusAccepted)
		return
	}
	writeOperationFailure(c)
}

func queryIDs(c *gin.Context, name string) ([]int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		writeError(c, http.StatusBadRequest, CodeInvalidID, name+" query parameter is required")
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			writeError(c, http.StatusBadRequest, CodeInvalidID, name+" must be a comma separated list of positive integers")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
