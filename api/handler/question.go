package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/api/transport"
	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/pkg/httpcontext"
	questionUC "github.com/forumhub/backend/usecase/question"
)

type QuestionHandler struct {
	baseHandler
	uc *questionUC.UseCase
}

func NewQuestionHandler(uc *questionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{baseHandler: newBaseHandler(adapter, logger), uc: uc}
}

// @Summary Post a question
// @Tags questions
// @Router /api/v1/questions [post]
func (h *QuestionHandler) Create(ctx *fasthttp.RequestCtx) {
	authorID := h.userID(ctx)
	if authorID == "" {
		return
	}

	var req transport.QuestionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondInvalid(ctx, "title is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	question, err := h.uc.CreateQuestion(stdCtx, authorID, &domain.Question{
		Title:   req.Title,
		Text:    req.Text,
		Picture: req.Picture,
	}, req.Tags)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, question)
}

// @Summary List questions, optionally filtered by title, tag or author
// @Tags questions
// @Router /api/v1/questions [get]
func (h *QuestionHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		questions []domain.Question
		err       error
	)
	switch {
	case len(ctx.QueryArgs().Peek("title")) > 0:
		questions, err = h.uc.SearchByTitle(stdCtx, string(ctx.QueryArgs().Peek("title")))
	case len(ctx.QueryArgs().Peek("tag")) > 0:
		questions, err = h.uc.ListByTag(stdCtx, string(ctx.QueryArgs().Peek("tag")))
	case len(ctx.QueryArgs().Peek("author")) > 0:
		questions, err = h.uc.ListByAuthor(stdCtx, string(ctx.QueryArgs().Peek("author")))
	default:
		questions, err = h.uc.ListQuestions(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, questions)
}

// @Summary Get a question by id
// @Tags questions
// @Router /api/v1/questions/{id} [get]
func (h *QuestionHandler) Get(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	question, err := h.uc.GetQuestion(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, question)
}

// @Summary Edit a question's title, text or picture
// @Tags questions
// @Router /api/v1/questions/{id} [put]
func (h *QuestionHandler) Update(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	var req transport.QuestionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	question, err := h.uc.UpdateQuestion(stdCtx, id, &domain.Question{
		Title:   req.Title,
		Text:    req.Text,
		Picture: req.Picture,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, question)
}

// @Summary Delete a question with its answers, votes and tag links
// @Tags questions
// @Router /api/v1/questions/{id} [delete]
func (h *QuestionHandler) Delete(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteQuestion(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Accept an answer, marking the question solved
// @Tags questions
// @Router /api/v1/questions/{id}/accept/{answerId} [post]
func (h *QuestionHandler) AcceptAnswer(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	answerID := pathValue(ctx, "answerId")
	if questionID == "" || answerID == "" {
		h.respondInvalid(ctx, "missing question or answer id")
		return
	}
	actingID := h.userID(ctx)
	if actingID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	question, err := h.uc.AcceptAnswer(stdCtx, questionID, answerID, actingID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, question)
}
