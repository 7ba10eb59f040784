package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runJWTAuth(t *testing.T, token string, mutate func(*fasthttp.RequestCtx)) (*fasthttp.RequestCtx, bool) {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	if mutate != nil {
		mutate(&ctx)
	}

	reached := false
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		reached = true
	})
	handler(&ctx)
	return &ctx, reached
}

func TestJWTAuthForwardsIdentity(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"role":    "MODERATOR",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, reached := runJWTAuth(t, token, nil)
	if !reached {
		t.Fatalf("handler not reached, status = %d", ctx.Response.StatusCode())
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u1" {
		t.Errorf("X-User-ID = %q", got)
	}
	if got := string(ctx.Request.Header.Peek("X-User-Role")); got != "MODERATOR" {
		t.Errorf("X-User-Role = %q", got)
	}
}

func TestJWTAuthStripsClientIdentityHeaders(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ctx, reached := runJWTAuth(t, token, func(ctx *fasthttp.RequestCtx) {
		ctx.Request.Header.Set("X-User-ID", "smuggled")
		ctx.Request.Header.Set("X-User-Role", "MODERATOR")
	})
	if !reached {
		t.Fatalf("handler not reached, status = %d", ctx.Response.StatusCode())
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u1" {
		t.Errorf("X-User-ID = %q, want token identity", got)
	}
	if got := string(ctx.Request.Header.Peek("X-User-Role")); got != "" {
		t.Errorf("X-User-Role = %q, want empty for roleless token", got)
	}
}

func TestJWTAuthRejectsMissingUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	ctx, reached := runJWTAuth(t, token, nil)
	if reached {
		t.Fatal("handler must not run without a user_id claim")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}

func TestJWTAuthRejectsWrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "u1",
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	ctx, reached := runJWTAuth(t, signed, nil)
	if reached {
		t.Fatal("handler must not run for an unsigned token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}
