package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/internal/infrastructure/blob"
	"github.com/forumhub/backend/pkg/httpcontext"
)

type UploadHandler struct {
	baseHandler
	store *blob.Store
}

func NewUploadHandler(store *blob.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{baseHandler: newBaseHandler(adapter, logger), store: store}
}

type uploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// @Summary Upload an image attachment
// @Tags uploads
// @Router /api/v1/uploads [post]
func (h *UploadHandler) Upload(ctx *fasthttp.RequestCtx) {
	header, err := ctx.FormFile("file")
	if err != nil {
		h.respondInvalid(ctx, "multipart field 'file' is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "open upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "read upload", err))
		return
	}

	name, err := h.store.Put(data, filepath.Ext(header.Filename), header.Header.Get("Content-Type"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.logger.Debug("stored upload",
		zap.String("name", name),
		zap.Int("size", len(data)),
	)
	h.respondSuccess(ctx, http.StatusCreated, uploadResponse{
		Name: name,
		URL:  "/uploads/" + name,
	})
}

// @Summary Serve an uploaded image
// @Tags uploads
// @Router /uploads/{name} [get]
func (h *UploadHandler) Serve(ctx *fasthttp.RequestCtx) {
	name := pathValue(ctx, "name")
	if name == "" {
		h.respondInvalid(ctx, "missing upload name")
		return
	}

	meta, err := h.store.Stat(name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if meta == nil {
		h.respondError(ctx, domain.NewError(domain.ErrCodeNotFound, "upload not found"))
		return
	}
	data, err := h.store.Get(name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	if meta.ContentType != "" {
		ctx.Response.Header.SetContentType(meta.ContentType)
	} else {
		ctx.Response.Header.SetContentType("application/octet-stream")
	}
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}

// @Summary Remove an uploaded image
// @Tags uploads
// @Router /api/v1/uploads/{name} [delete]
func (h *UploadHandler) Delete(ctx *fasthttp.RequestCtx) {
	name := pathValue(ctx, "name")
	if name == "" {
		h.respondInvalid(ctx, "missing upload name")
		return
	}

	if err := h.store.Delete(name); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
