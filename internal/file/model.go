package file

import (
	"errors"
	"net/http"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "file not found")
	ErrThumbnailNotFound = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrTooLarge          = apperror.New(http.StatusRequestEntityTooLarge, "image is too large")
	ErrUnsupportedType   = apperror.New(http.StatusBadRequest, "image must be a JPEG, PNG or GIF file")
	ErrEmpty             = errors.New("uploaded file is empty")
)

// ImageTypes are the content types accepted for entity images.
var ImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// File represents a stored upload, typically a cluster, venue or zone image.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
