package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ft-kumarsatyam/venue-management-system/internal/file"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/request"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

// ServeFile serves the file content by ID
func (h *Handler) ServeFile(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid file id", err))
		return
	}

	stream, fileInfo, err := h.fileService.Download(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", fileInfo.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+fileInfo.Filename+"\"")
	c.Header("Cache-Control", "private, max-age=86400")

	c.Status(http.StatusOK)
	// Response already started; nothing useful to report on a failed copy.
	_, _ = io.Copy(c.Writer, stream)
}

// Delete removes an uploaded file and its thumbnail.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid file id", err))
		return
	}
	if err := h.fileService.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Deleted(c)
}

// ServeThumbnail serves the thumbnail image by file ID
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, request.BadRequest("invalid file id", err))
		return
	}

	stream, fileInfo, err := h.fileService.DownloadThumbnail(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	// Thumbnails are always JPEG
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+fileInfo.Filename+"_thumb.jpg\"")
	c.Header("Cache-Control", "private, max-age=86400")

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

// ImageUpload stores the optional image part of an entity form.
type ImageUpload struct {
	FormFieldName string
	MaxSizeBytes  int64
}

// Save uploads the image part named by cfg for userID. It returns nil when
// the request carries no such part.
func (h *Handler) Save(c *gin.Context, cfg ImageUpload, userID string) (*file.File, error) {
	fieldName := cfg.FormFieldName
	if fieldName == "" {
		fieldName = "image"
	}

	header, err := c.FormFile(fieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, request.BadRequest("invalid "+fieldName+" upload", err)
	}

	return h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   header,
		UserID:       userID,
		MaxSizeBytes: cfg.MaxSizeBytes,
		AllowedTypes: file.ImageTypes,
		ResizeImage:  true,
	})
}

// Discard removes an upload whose owning record could not be saved.
func (h *Handler) Discard(c *gin.Context, f *file.File) {
	if f == nil {
		return
	}
	_ = h.fileService.Delete(c.Request.Context(), f.ID)
}

// Uploader stores and discards entity images; *Handler implements it.
type Uploader interface {
	Save(c *gin.Context, cfg ImageUpload, userID string) (*file.File, error)
	Discard(c *gin.Context, f *file.File)
}

// AttachImage saves the image part of the request, if any, and points url at
// the stored file. The returned file must be discarded if the owning record
// is not saved.
func AttachImage(c *gin.Context, up Uploader, cfg ImageUpload, userID string, url **string) (*file.File, error) {
	f, err := up.Save(c, cfg, userID)
	if err != nil || f == nil {
		return nil, err
	}
	u := file.FileURL(f.ID)
	*url = &u
	return f, nil
}
