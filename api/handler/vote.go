package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/api/transport"
	"github.com/forumhub/backend/pkg/httpcontext"
	voteUC "github.com/forumhub/backend/usecase/vote"
)

type VoteHandler struct {
	baseHandler
	uc *voteUC.UseCase
}

func NewVoteHandler(uc *voteUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{baseHandler: newBaseHandler(adapter, logger), uc: uc}
}

// @Summary Vote on a question; repeating the same vote retracts it
// @Tags votes
// @Router /api/v1/questions/{id}/vote [post]
func (h *VoteHandler) VoteQuestion(ctx *fasthttp.RequestCtx) {
	questionID := pathValue(ctx, "id")
	if questionID == "" {
		h.respondInvalid(ctx, "missing question id")
		return
	}
	voterID := h.userID(ctx)
	if voterID == "" {
		return
	}

	var req transport.VoteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	vote, err := h.uc.VoteQuestion(stdCtx, questionID, voterID, req.Value)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if vote == nil {
		// Retraction: the previous identical vote was removed.
		h.respondSuccess(ctx, http.StatusNoContent, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, vote)
}

// @Summary Vote on an answer; repeating the same vote retracts it
// @Tags votes
// @Router /api/v1/answers/{id}/vote [post]
func (h *VoteHandler) VoteAnswer(ctx *fasthttp.RequestCtx) {
	answerID := pathValue(ctx, "id")
	if answerID == "" {
		h.respondInvalid(ctx, "missing answer id")
		return
	}
	voterID := h.userID(ctx)
	if voterID == "" {
		return
	}

	var req transport.VoteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	vote, err := h.uc.VoteAnswer(stdCtx, answerID, voterID, req.Value)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if vote == nil {
		h.respondSuccess(ctx, http.StatusNoContent, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, vote)
}
