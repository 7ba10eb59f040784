package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/api/transport"
	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/pkg/httpcontext"
	userUC "github.com/forumhub/backend/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{baseHandler: newBaseHandler(adapter, logger), uc: uc}
}

// @Summary Register a new user
// @Tags users
// @Router /api/v1/users [post]
func (h *UserHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Username == "" {
		h.respondInvalid(ctx, "username and email are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, &domain.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary List users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Get a user by id
// @Tags users
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetUser(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update own profile
// @Tags users
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	actingID := h.userID(ctx)
	if actingID == "" {
		return
	}
	if actingID != id {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req transport.UserUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.UpdateUser(stdCtx, id, &domain.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Delete a user and everything they posted
// @Tags users
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteUser(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
