package request

import (
	"net/http"
	"strings"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
)

// MaxPageSize bounds limit; dropdowns ask for the whole table at once.
const MaxPageSize = 1000

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams are the query parameters shared by every list endpoint.
type ListParams struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Search string `form:"search"`
}

// Normalize applies defaults and trims the search term.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = pagination.DefaultItemsPerPage
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
}

// Offset returns the number of rows to skip.
func (p ListParams) Offset() int {
	return pagination.Offset(p.Page, p.Limit)
}

// BadRequest wraps a binding or parsing failure into a 400.
func BadRequest(message string, err error) *apperror.AppError {
	return apperror.Wrap(err, http.StatusBadRequest, message)
}
