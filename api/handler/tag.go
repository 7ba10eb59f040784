package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/api/transport"
	"github.com/forumhub/backend/pkg/httpcontext"
	tagUC "github.com/forumhub/backend/usecase/tag"
)

type TagHandler struct {
	baseHandler
	uc *tagUC.UseCase
}

func NewTagHandler(uc *tagUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TagHandler {
	return &TagHandler{baseHandler: newBaseHandler(adapter, logger), uc: uc}
}

// @Summary List all tags
// @Tags tags
// @Router /api/v1/tags [get]
func (h *TagHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tags, err := h.uc.ListTags(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tags)
}

// @Summary Create a tag, or return the existing one with the same name
// @Tags tags
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.TagRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondInvalid(ctx, "name is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tag, err := h.uc.CreateOrGet(stdCtx, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, tag)
}

// @Summary List the tags attached to a question
// @Tags tags
// @Router /api/v1/questions/{id}/tags [get]
func (h *TagHandler) ListForQuestion(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	if questionID == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tags, err := h.uc.TagsForQuestion(stdCtx, questionID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tags)
}

// @Summary Attach a tag to a question, creating the tag if needed
// @Tags tags
// @Router /api/v1/questions/{id}/tags [post]
func (h *TagHandler) AddToQuestion(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	if questionID == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	var req transport.TagRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" {
		h.respondInvalid(ctx, "name is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tag, err := h.uc.AddTagToQuestion(stdCtx, questionID, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, tag)
}

// @Summary Detach a tag from a question
// @Tags tags
// @Router /api/v1/questions/{id}/tags/{name} [delete]
func (h *TagHandler) RemoveFromQuestion(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	name := pathValue(ctx, "name")
	if questionID == "" || name == "" {
		h.respondInvalid(ctx, "missing question id or tag name")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RemoveTagFromQuestion(stdCtx, questionID, name); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
