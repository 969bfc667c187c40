package sporttype

import (
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "sport type not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
	ErrNameTaken    = apperror.New(http.StatusConflict, "sport type name already exists")
	ErrInUse        = apperror.New(http.StatusConflict, "sport type is used by facilities")
)

// SportType is the sport a facility is built for (e.g., Badminton).
type SportType struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing sport types.
type Filter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string // "name" or "created_at"
	SortOrder string // "ASC" or "DESC"
}
