package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/purchasing/internal/validation"
)

// Коды ошибок в ErrorDetails.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeOperationFailure = "OPERATION_FAILURE"
	CodeInvalidID        = "INVALID_ID"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInternal         = "INTERNAL_ERROR"
)

// SuccessDetails — обёртка успешного ответа.
type SuccessDetails struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data"`
	Properties map[string]string `json:"properties"`
}

// ErrorDetails — обёртка ответа с ошибкой.
type ErrorDetails struct {
	Success    bool              `json:"success"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
}

// ValidationProblem — 400 с ошибками по полям (RFC 9457 problem details).
type ValidationProblem struct {
	Type   string             `json:"type"`
	Title  string             `json:"title"`
	Status int                `json:"status"`
	Errors validation.Problem `json:"errors"`
}

// IDResponse возвращается при создании записи.
type IDResponse struct {
	ID int64 `json:"id"`
}

func writeSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessDetails{Success: true, Data: data, Properties: map[string]string{}})
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorDetails{
		Success:    false,
		Code:       code,
		Message:    message,
		Properties: requestProperties(c),
	})
}

func writeProblem(c *gin.Context, problem validation.Problem) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationProblem{
		Type:   "https://tools.ietf.org/html/rfc9110#section-15.5.1",
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: problem,
	})
}

func writeNotFound(c *gin.Context, entity string) {
	writeError(c, http.StatusNotFound, CodeNotFound, entity+" not found")
}

func writeOperationFailure(c *gin.Context) {
	writeError(c, http.StatusServiceUnavailable, CodeOperationFailure, "storage could not complete the operation")
}

func requestProperties(c *gin.Context) map[string]string {
	props := map[string]string{}
	if id := c.GetString(requestIDKey); id != "" {
		props["request_id"] = id
	}
	return props
}
