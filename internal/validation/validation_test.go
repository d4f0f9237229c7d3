package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type lineRequest struct {
	ID        int64 `json:"id" validate:"gt=0"`
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"min=1,max=20"`
}

type orderRequest struct {
	CustomerID int64         `json:"customer_id" validate:"gt=0"`
	Items      []lineRequest `json:"items" validate:"min=1,dive"`
}

type productRequest struct {
	ShortName  string            `json:"short_name" validate:"required"`
	Properties map[string]string `json:"properties" validate:"min=1,dive,keys,required,endkeys,required"`
	Price      int64             `json:"price" validate:"gt=10"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()

	problem := v.Struct(orderRequest{
		CustomerID: 1,
		Items:      []lineRequest{{ID: 1, ProductID: 1, Quantity: 20}},
	})
	require.True(t, problem.Empty(), "unexpected problem: %v", problem)
}

func TestStruct_UsesJSONFieldNames(t *testing.T) {
	v := New()

	problem := v.Struct(orderRequest{
		CustomerID: 0,
		Items:      []lineRequest{{ID: 1, ProductID: 0, Quantity: 21}},
	})

	require.Equal(t, []string{"customer_id", "items[0].product_id", "items[0].quantity"}, problem.Fields())
	require.Equal(t, []string{"must be greater than 0"}, problem["customer_id"])
	require.Equal(t, []string{"must be at most 20"}, problem["items[0].quantity"])
}

func TestStruct_EmptyCollection(t *testing.T) {
	v := New()

	problem := v.Struct(orderRequest{CustomerID: 1})
	require.Equal(t, []string{"items"}, problem.Fields())
	require.Equal(t, []string{"at least 1 entry is required"}, problem["items"])
}

func TestStruct_MapRules(t *testing.T) {
	v := New()

	problem := v.Struct(productRequest{
		ShortName:  "shirt",
		Properties: map[string]string{"color": ""},
		Price:      10,
	})

	require.Contains(t, problem, "price")
	require.Equal(t, []string{"must be greater than 10"}, problem["price"])

	var propertyErrors int
	for _, field := range problem.Fields() {
		if strings.HasPrefix(field, "properties") {
			propertyErrors++
		}
	}
	require.Equal(t, 1, propertyErrors)

	problem = v.Struct(productRequest{ShortName: "", Price: 11})
	require.Equal(t, []string{"properties", "short_name"}, problem.Fields())
	require.Equal(t, []string{"must not be empty"}, problem["short_name"])
}

func TestFor_RunsExtraChecks(t *testing.T) {
	v := New()
	rule := For(v, func(req orderRequest, p Problem) {
		seen := map[int64]bool{}
		for _, item := range req.Items {
			if seen[item.ID] {
				p.Add("items", "line ids must be unique")
			}
			seen[item.ID] = true
		}
	})

	problem := rule(orderRequest{
		CustomerID: 1,
		Items: []lineRequest{
			{ID: 1, ProductID: 1, Quantity: 1},
			{ID: 1, ProductID: 2, Quantity: 1},
		},
	})
	require.Equal(t, []string{"line ids must be unique"}, problem["items"])
}

func TestStruct_NonStructInput(t *testing.T) {
	problem := New().Struct(42)
	require.Contains(t, problem, "request")
}
