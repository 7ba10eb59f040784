package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/domain"
	"github.com/forumhub/backend/pkg/httpcontext"
	authUC "github.com/forumhub/backend/usecase/auth"
	maintenanceUC "github.com/forumhub/backend/usecase/maintenance"
	userUC "github.com/forumhub/backend/usecase/user"
)

type ModeratorHandler struct {
	baseHandler
	users       *userUC.UseCase
	auth        *authUC.UseCase
	maintenance *maintenanceUC.UseCase
}

func NewModeratorHandler(users *userUC.UseCase, auth *authUC.UseCase, maintenance *maintenanceUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ModeratorHandler {
	return &ModeratorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		users:       users,
		auth:        auth,
		maintenance: maintenance,
	}
}

// @Summary Ban a user, blocking them from posting
// @Tags moderation
// @Router /api/v1/moderation/users/{id}/ban [post]
func (h *ModeratorHandler) Ban(ctx *fasthttp.RequestCtx) {
	targetID := pathValue(ctx, "id")
	if targetID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}
	actingID := h.userID(ctx)
	if actingID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.BanUser(stdCtx, actingID, targetID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := h.auth.RevokeUserSessions(stdCtx, targetID); err != nil {
		// the ban itself stuck, so log and keep going
		h.logger.Warn("failed to revoke sessions for banned user", zap.Error(err))
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Lift a user's ban
// @Tags moderation
// @Router /api/v1/moderation/users/{id}/unban [post]
func (h *ModeratorHandler) Unban(ctx *fasthttp.RequestCtx) {
	targetID := pathValue(ctx, "id")
	if targetID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}
	actingID := h.userID(ctx)
	if actingID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.users.UnbanUser(stdCtx, actingID, targetID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

type maintenanceResult struct {
	Affected int `json:"affected"`
}

// @Summary Rewrite legacy phone numbers to international format
// @Tags moderation
// @Router /api/v1/moderation/maintenance/phone-formats [post]
func (h *ModeratorHandler) RunPhoneFormats(ctx *fasthttp.RequestCtx) {
	if !h.requireModerator(ctx) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.maintenance.UpdatePhoneNumberFormats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, maintenanceResult{Affected: count})
}

// @Summary Remove accounts registered with throwaway test emails
// @Tags moderation
// @Router /api/v1/moderation/maintenance/test-users [post]
func (h *ModeratorHandler) RunTestUserCleanup(ctx *fasthttp.RequestCtx) {
	if !h.requireModerator(ctx) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.maintenance.CleanupTestUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, maintenanceResult{Affected: count})
}

// requireModerator checks the role header set by the JWT middleware and
// writes the 403 itself when it does not match.
func (h *ModeratorHandler) requireModerator(ctx *fasthttp.RequestCtx) bool {
	if h.userID(ctx) == "" {
		return false
	}
	if string(ctx.Request.Header.Peek("X-User-Role")) != string(domain.RoleModerator) {
		h.respondError(ctx, domain.ErrNotModerator)
		return false
	}
	return true
}
