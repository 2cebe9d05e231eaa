package files

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"secure-file-server/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for files under the root.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the file routes. GET also answers HEAD.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/*", h.HandleGet)
	app.All("/*", h.HandleUnsupported)
}

// HandleGet serves a file, an index file or a directory listing.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	// Decoded as a path, not a query, so '+' stays literal.
	requestPath, err := url.PathUnescape(c.Path())
	if err != nil {
		l.Debug("Malformed path escape", zap.String("path", c.Path()))
		return fiber.ErrNotFound
	}

	entry, err := h.service.Stat(c.Context(), requestPath)
	if err != nil {
		return h.notFound(l, requestPath, err)
	}

	if !entry.IsDir {
		if strings.HasSuffix(requestPath, "/") {
			return fiber.ErrNotFound
		}
		return h.sendFile(c, l, entry)
	}

	if !strings.HasSuffix(requestPath, "/") {
		// Built from the resolved name so a leading "//" cannot form a protocol-relative URL.
		target := url.URL{Path: "/" + entry.Path + "/", RawQuery: string(c.Request().URI().QueryString())}
		return c.Redirect(target.String(), fiber.StatusMovedPermanently)
	}

	index, err := h.service.Index(c.Context(), entry)
	switch {
	case err == nil:
		return h.sendFile(c, l, index)
	case !errors.Is(err, ErrNotFound):
		return h.notFound(l, requestPath, err)
	}

	entries, err := h.service.List(c.Context(), entry)
	if err != nil {
		return h.notFound(l, requestPath, err)
	}
	body, err := RenderListing(requestPath, entries)
	if err != nil {
		l.Error("Failed to render directory listing", zap.String("path", requestPath), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}

// HandleUnsupported rejects every method other than GET and HEAD.
func (h *Handler) HandleUnsupported(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, HEAD")
	return fiber.ErrMethodNotAllowed
}

func (h *Handler) sendFile(c *fiber.Ctx, l *zap.Logger, entry Entry) error {
	if !entry.ModTime.IsZero() {
		modified := entry.ModTime.UTC().Truncate(time.Second)
		c.Set(fiber.HeaderLastModified, modified.Format(http.TimeFormat))
		if notModifiedSince(c, modified) {
			c.Status(fiber.StatusNotModified)
			return nil
		}
	}

	rc, err := h.service.Open(c.Context(), entry)
	if err != nil {
		return h.notFound(l, entry.Path, err)
	}

	c.Set(fiber.HeaderContentType, ContentType(entry.Name))
	// The stream is closed by fasthttp once the response is written.
	return c.SendStream(rc, int(entry.Size))
}

func (h *Handler) notFound(l *zap.Logger, requestPath string, err error) error {
	switch {
	case errors.Is(err, ErrOutsideRoot):
		l.Warn("Rejected path outside root", zap.String("path", requestPath))
	case errors.Is(err, ErrNotFound):
		l.Debug("Path not found", zap.String("path", requestPath))
	default:
		l.Error("Failed to read path", zap.String("path", requestPath), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return fiber.ErrNotFound
}

// notModifiedSince reports whether If-Modified-Since allows a 304.
// If-None-Match takes precedence and disables the check.
func notModifiedSince(c *fiber.Ctx, modified time.Time) bool {
	ims := c.Get(fiber.HeaderIfModifiedSince)
	if ims == "" || c.Get(fiber.HeaderIfNoneMatch) != "" {
		return false
	}
	since, err := http.ParseTime(ims)
	if err != nil {
		return false
	}
	return !modified.After(since)
}
