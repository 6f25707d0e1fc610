package httpserver

import (
	"crypto/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "rid"
)

var alphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func newReqID8() string {
	b := make([]byte, 8)
	rnd := make([]byte, 8)
	_, _ = rand.Read(rnd)
	for i := 0; i < 8; i++ {
		b[i] = alphabet[int(rnd[i])%len(alphabet)]
	}
	return string(b)
}

// RequestID 沿用客户端给的 8 位 id，没有就生成一个
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(requestIDHeader)
		if len(rid) != 8 {
			rid = newReqID8()
		}
		ctx.Set(requestIDKey, rid)
		ctx.Header(requestIDHeader, rid)
		ctx.Next()
	}
}

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}

func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		reqLog := log.With().
			Str("rid", GetRequestID(ctx)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Logger()

		ctx.Next()

		ev := reqLog.Info()
		if ctx.Writer.Status() >= 500 {
			ev = reqLog.Error()
		}
		ev.Int("status", ctx.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("request completed")
	}
}
