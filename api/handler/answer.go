package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/api/transport"
	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/pkg/httpcontext"
	answerUC "github.com/forumhub/backend/usecase/answer"
)

type AnswerHandler struct {
	baseHandler
	uc *answerUC.UseCase
}

func NewAnswerHandler(uc *answerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AnswerHandler {
	return &AnswerHandler{baseHandler: newBaseHandler(adapter, logger), uc: uc}
}

// @Summary Post an answer to a question
// @Tags answers
// @Router /api/v1/questions/{id}/answers [post]
func (h *AnswerHandler) Create(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	if questionID == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}
	authorID := h.userID(ctx)
	if authorID == "" {
		return
	}

	var req transport.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Text == "" {
		h.respondInvalid(ctx, "text is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.CreateAnswer(stdCtx, authorID, questionID, &domain.Answer{
		Text:    req.Text,
		Picture: req.Picture,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, answer)
}

// @Summary List answers for a question
// @Tags answers
// @Router /api/v1/questions/{id}/answers [get]
func (h *AnswerHandler) ListForQuestion(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	if questionID == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answers, err := h.uc.ListForQuestion(stdCtx, questionID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, answers)
}

// @Summary Get an answer by id
// @Tags answers
// @Router /api/v1/answers/{id} [get]
func (h *AnswerHandler) Get(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing answer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.GetAnswer(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, answer)
}

// @Summary Edit an answer's text or picture
// @Tags answers
// @Router /api/v1/answers/{id} [put]
func (h *AnswerHandler) Update(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing answer id")
		return
	}

	var req transport.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	answer, err := h.uc.UpdateAnswer(stdCtx, id, &domain.Answer{
		Text:    req.Text,
		Picture: req.Picture,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, answer)
}

// @Summary Delete an answer
// @Tags answers
// @Router /api/v1/answers/{id} [delete]
func (h *AnswerHandler) Delete(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing answer id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteAnswer(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
