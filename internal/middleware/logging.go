package middleware

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the process-wide structured logger. It is also installed as the
// slog default so deep layers can log without importing this package.
var Logger *slog.Logger

type ctxKey string

const (
	ctxRequestID ctxKey = "request_id"
	ctxUserID    ctxKey = "user_id"
	ctxUserEmail ctxKey = "user_email"
	ctxTraceID   ctxKey = "trace_id"
)

// requestScopedHandler decorates every record with the request identity
// stashed in the context by ContextMiddleware.
type requestScopedHandler struct {
	slog.Handler
}

func (h *requestScopedHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range []ctxKey{ctxRequestID, ctxUserEmail, ctxTraceID} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			r.AddAttrs(slog.String(string(key), v))
		}
	}
	if id, ok := ctx.Value(ctxUserID).(uint); ok {
		r.AddAttrs(slog.Uint64(string(ctxUserID), uint64(id)))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var inner slog.Handler
	if os.Getenv("APP_ENV") == "production" {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		inner = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(&requestScopedHandler{inner})
	slog.SetDefault(Logger)
}

// ContextMiddleware copies the request id and, once auth has run, the caller
// identity from Fiber locals into the request context where the logging
// handler can reach them.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid, ok := c.Locals("requestid").(string); ok {
			ctx = context.WithValue(ctx, ctxRequestID, rid)
		}
		if id, ok := c.Locals("userID").(uint); ok {
			ctx = context.WithValue(ctx, ctxUserID, id)
		}
		if email, ok := c.Locals("userEmail").(string); ok {
			ctx = context.WithValue(ctx, ctxUserEmail, email)
		}
		if tid, ok := c.Locals("traceID").(string); ok {
			ctx = context.WithValue(ctx, ctxTraceID, tid)
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// StructuredLogger logs one line per request with status, latency, and caller
// metadata.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			Logger.ErrorContext(c.UserContext(), "request failed", attrs...)
		} else {
			Logger.InfoContext(c.UserContext(), "request processed", attrs...)
		}
		return err
	}
}
