package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
	"github.com/ft-kumarsatyam/venue-management-system/internal/sporttype"
)

type Handler struct {
	service sporttype.Service
}

func NewHandler(service sporttype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSportTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, request.BadRequest("invalid query parameters", err))
		return
	}
	req.Normalize()

	sts, total, err := h.service.List(c.Request.Context(), sporttype.Filter{
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.Limit,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SportTypeResponse, len(sts))
	for i, st := range sts {
		items[i] = NewResponse(st)
	}

	response.Page(c, items, req.Page, req.Limit, total)
}

// Create adds a sport type from a JSON body.
// Access Control: System Admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, request.BadRequest("invalid request body", err))
		return
	}

	st, err := h.service.Create(c.Request.Context(), sporttype.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, NewResponse(st))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid sport type id", err))
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewResponse(st))
}

// Update patches a sport type.
// Access Control: System Admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, request.BadRequest("invalid sport type id", err))
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, request.BadRequest("invalid request body", err))
		return
	}

	st, err := h.service.Update(c.Request.Context(), uri.ID, sporttype.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewResponse(st))
}

// Delete removes a sport type no facility uses.
// Access Control: System Admin only.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid sport type id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c)
}
