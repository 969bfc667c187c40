package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
)

// DataResponse wraps a single record.
type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// PageResponse is the standard wrapper for list endpoints. The pagination
// fields sit next to data, not nested.
type PageResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	pagination.Info
}

// StatusResponse is the body of operations that return no record.
type StatusResponse struct {
	Success bool `json:"success"`
}

// NewPageResponse builds a list envelope from the total row count.
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Success: true,
		Data:    items,
		Info:    pagination.Compute(total, page, pageSize),
	}
}

// OK writes a 200 with the record wrapped in data.
func OK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, DataResponse[T]{Success: true, Data: data})
}

// Created writes a 201 with the record wrapped in data.
func Created[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, DataResponse[T]{Success: true, Data: data})
}

// Page writes a list envelope.
func Page[T any](c *gin.Context, items []T, page, pageSize, total int) {
	c.JSON(http.StatusOK, NewPageResponse(items, page, pageSize, total))
}

// Deleted writes {"success":true}.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Success: true})
}
