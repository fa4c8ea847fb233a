package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/redis/go-redis/v9"
)

// Redis keys for request stats, shared with the health service (reset, collect).
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// ErrorLogSize is how many 5xx entries are kept in KeyErrorLog.
const ErrorLogSize = 50

// HealthMarker records request stats in Redis (skip /, /health*, /metrics, favicon).
// A nil client disables it.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || path == "/metrics" || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx := context.Background()
		_, _ = rdb.Set(ctx, KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, KeyReqTotal).Result()

		err := c.Next()

		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, KeyResTime, float64(ms)).Result()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		if status >= 500 {
			_, _ = rdb.Incr(ctx, KeyReqErrors).Result()
			entry := map[string]interface{}{
				"time":    time.Now(),
				"path":    c.OriginalURL(),
				"method":  c.Method(),
				"status":  status,
				"traceId": GetTraceID(c),
				"message": errorMessage(err, status),
			}
			eb, _ := json.Marshal(entry)
			_, _ = rdb.LPush(ctx, KeyErrorLog, eb).Result()
			_, _ = rdb.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
		}
		return err
	}
}

func errorMessage(err error, status int) string {
	if err != nil {
		return err.Error()
	}
	return utils.StatusMessage(status)
}
