package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/forumhub/backend/internal/infrastructure/monitor"
	"github.com/forumhub/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
	version string
}

func NewHealthHandler(m *monitor.Monitor, version string, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     m,
		version:     version,
	}
}

type healthResponse struct {
	Version string         `json:"version"`
	Online  bool           `json:"online"`
	Status  monitor.Status `json:"status"`
}

// @Summary Liveness and dependency status
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Health(ctx *fasthttp.RequestCtx) {
	resp := healthResponse{
		Version: h.version,
		Online:  h.monitor.IsOnline(),
		Status:  h.monitor.GetStatus(),
	}
	status := http.StatusOK
	if !resp.Online {
		status = http.StatusServiceUnavailable
	}
	h.respondSuccess(ctx, status, resp)
}
