package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/purchasing/internal/customer"
)

type customerRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type customerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (h *handlers) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	switch resp := h.svc.Customers.Get(c.Request.Context(), id).(type) {
	case customer.Found:
		cu := resp.Customer
		writeSuccess(c, http.StatusOK, customerResponse{
			ID: cu.ID, Name: cu.Name, Address: cu.Address, ZipCode: cu.ZipCode, City: cu.City, Country: cu.Country,
		})
	case customer.NotFound:
		writeNotFound(c, "customer")
	default:
		writeOperationFailure(c)
	}
}

func (h *handlers) insertCustomer(c *gin.Context) {
	req, ok := bind(c, h.rules.customer)
	if !ok {
		return
	}

	resp := h.svc.Customers.Insert(c.Request.Context(), customer.Customer{
		Name: req.Name, Address: req.Address, ZipCode: req.ZipCode, City: req.City, Country: req.Country,
	})
	if inserted, ok := resp.(customer.Inserted); ok {
		writeSuccess(c, http.StatusOK, IDResponse{ID: inserted.ID})
		return
	}
	writeOperationFailure(c)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, ok := h.svc.Customers.Delete(c.Request.Context(), id).(customer.Deleted); ok {
		c.Status(http.StatusAccepted)
		return
	}
	writeOperationFailure(c)
}
