package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/forumhub/backend/pkg/logger"
)

// Key is the context value key type for request metadata.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyUserID     Key = "user_id"
)

// Adapter derives a stdlib context with a deadline and request metadata from
// a fasthttp request, so the usecase layer never sees fasthttp types.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the request-scoped context. The request id is propagated from
// the client when present and echoed back in the response either way.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if userID := string(ctx.Request.Header.Peek("X-User-ID")); userID != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserID, userID)
	}

	return stdCtx, cancel
}

// UserID returns the authenticated user id stored by Attach, if any.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(KeyUserID).(string)
	return id
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if header := string(ctx.Request.Header.Peek("X-Request-ID")); strings.TrimSpace(header) != "" {
		return header
	}
	return uuid.NewString()
}
