// Package slogx provides a package-level structured logger shared by every
// protocol component in this module, mirroring the teacher's internal/logger
// but trimmed to what a library (not an application) needs: no file output,
// no color/terminal detection, just a level and a format around log/slog.
package slogx

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Standard field keys. Keeping these as constants avoids key typos across
// the pipeline/rpc/nfs3/socks5 packages and keeps log aggregation queryable.
const (
	KeyChannel   = "channel"
	KeyProtocol  = "protocol"
	KeyProcedure = "procedure"
	KeyXID       = "xid"
	KeyState     = "state"
	KeyAddr      = "addr"
	KeyError     = "error"
)

var currentLevel atomic.Int32 // stores slog.Level

func init() {
	currentLevel.Store(int32(slog.LevelInfo))
	rebuild()
}

var logger atomic.Pointer[slog.Logger]

func rebuild() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(currentLevel.Load()),
	})
	logger.Store(slog.New(h))
}

// SetLevel changes the process-wide minimum log level.
func SetLevel(l slog.Level) {
	currentLevel.Store(int32(l))
	rebuild()
}

func L() *slog.Logger { return logger.Load() }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// DebugCtx etc. thread a context through for future trace-id propagation
// without forcing every call site to pass one today.
func DebugCtx(ctx context.Context, msg string, args ...any) { L().DebugContext(ctx, msg, args...) }
func InfoCtx(ctx context.Context, msg string, args ...any)  { L().InfoContext(ctx, msg, args...) }
func WarnCtx(ctx context.Context, msg string, args ...any)  { L().WarnContext(ctx, msg, args...) }
func ErrorCtx(ctx context.Context, msg string, args ...any) { L().ErrorContext(ctx, msg, args...) }
