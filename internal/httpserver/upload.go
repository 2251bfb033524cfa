package httpserver

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minhtd/product-catalog/internal/logging"
	"github.com/minhtd/product-catalog/internal/transport"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UploadHandler stores product images under Dir/products. Uploading never
// touches a product row; the caller passes the returned URL to a later
// create or update.
type UploadHandler struct {
	Dir string
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload_image")

	file, err := c.FormFile("image")
	if err != nil {
		l.Warn("upload_failed", "status", 400, "reason", "missing file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	// validate before anything is written to disk
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		l.Warn("upload_failed", "status", 400, "reason", "bad extension", "filename", file.Filename)
		return echo.NewHTTPError(http.StatusBadRequest, "only jpg, jpeg, png and gif files are allowed")
	}
	if file.Size > maxUploadSize {
		l.Warn("upload_failed", "status", 400, "reason", "too large", "size", file.Size)
		return echo.NewHTTPError(http.StatusBadRequest, "file exceeds the 5 MiB limit")
	}

	src, err := file.Open()
	if err != nil {
		l.Error("upload_failed", "status", 500, "reason", "cannot open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read uploaded file")
	}
	defer src.Close()

	dir := filepath.Join(h.Dir, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.Error("upload_failed", "status", 500, "reason", "cannot create upload dir", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store uploaded file")
	}

	name := fmt.Sprintf("product-image-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		l.Error("upload_failed", "status", 500, "reason", "cannot create file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store uploaded file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		l.Error("upload_failed", "status", 500, "reason", "cannot write file", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store uploaded file")
	}

	l.Info("upload_success", "filename", name, "size", file.Size)
	return respond(c, http.StatusCreated, "image uploaded", transport.UploadResponse{
		ImageURL: "/uploads/products/" + name,
	})
}
