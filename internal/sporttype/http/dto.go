package http

import (
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/sporttype"
)

// ListSportTypesRequest defines query parameters for listing sport types.
type ListSportTypesRequest struct {
	request.ListParams
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type SportTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(st *sporttype.SportType) SportTypeResponse {
	return SportTypeResponse{
		ID:          st.ID,
		Name:        st.Name,
		Description: st.Description,
		CreatedAt:   st.CreatedAt,
	}
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
