package handler

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/api/metrics"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

const (
	maxAvatarBytes = 5 << 20
	maxFileBytes   = 25 << 20
)

// UploadHandler stores avatar and generic file uploads in the blob store.
// Objects are keyed <identity_id>/<uuid><ext>, so ownership is encoded in
// the key prefix.
type UploadHandler struct {
	store ports.BlobStore
}

func NewUploadHandler(store ports.BlobStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Avatar handles POST /upload/avatar. The upload must be ≤5MB and sniff as
// an image; the declared Content-Type header is not trusted.
//
// @Summary      Upload an avatar image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 5MB)"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /upload/avatar [post]
func (h *UploadHandler) Avatar(c echo.Context) error {
	return h.upload(c, maxAvatarBytes, true)
}

// File handles POST /upload/file: any content type, ≤25MB.
//
// @Summary      Upload a file
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File (max 25MB)"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /upload/file [post]
func (h *UploadHandler) File(c echo.Context) error {
	return h.upload(c, maxFileBytes, false)
}

func (h *UploadHandler) upload(c echo.Context, maxBytes int64, imageOnly bool) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}
	if fh.Size > maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("file exceeds %d bytes", maxBytes))
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return fmt.Errorf("sniff upload: %w", err)
	}
	if imageOnly && !strings.HasPrefix(mtype.String(), "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "file is not an image")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}

	key := identityID + "/" + uuid.NewString() + mtype.Extension()
	url, err := h.store.Put(c.Request().Context(), key, mtype.String(), src)
	if err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	kind := "file"
	if imageOnly {
		kind = "avatar"
	}
	metrics.UploadBytesTotal.WithLabelValues(kind).Add(float64(fh.Size))

	return c.JSON(http.StatusOK, uploadResponse{
		URL:         url,
		Filename:    key,
		Size:        fh.Size,
		ContentType: mtype.String(),
	})
}

// DeleteAvatar handles DELETE /upload/avatar/*. The object key must be
// prefixed by the caller's identity id; deleting another identity's object
// is forbidden.
//
// @Summary      Delete an uploaded avatar
// @Tags         upload
// @Produce      json
// @Security     BearerAuth
// @Param        filename  path      string  true  "Object key (identity_id/name.ext)"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  errorResponse
// @Router       /upload/avatar/{filename} [delete]
func (h *UploadHandler) DeleteAvatar(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}

	key := c.Param("*")
	if key == "" || key != path.Clean(key) || strings.Contains(key, "..") {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filename")
	}
	if !strings.HasPrefix(key, identityID+"/") {
		return echo.NewHTTPError(http.StatusForbidden, "filename not owned by caller")
	}

	if err := h.store.Delete(c.Request().Context(), key); err != nil {
		return fmt.Errorf("delete upload: %w", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "avatar deleted"})
}
