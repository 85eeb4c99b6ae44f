package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Aryankr26/fleet-backend-1.0/internal/config"
)

// RateLimiter 基于Redis固定窗口的限流器，按客户端IP和路径规则限流
type RateLimiter struct {
	redis *redis.Client
	cfg   *config.Config
}

// NewRateLimiter 创建限流器
func NewRateLimiter(redisClient *redis.Client, cfg *config.Config) *RateLimiter {
	return &RateLimiter{redis: redisClient, cfg: cfg}
}

// fixedWindowScript 固定窗口计数，计数与过期设置需要原子执行
const fixedWindowScript = `
	local current = tonumber(redis.call('GET', KEYS[1]) or 0)
	local limit = tonumber(ARGV[1])
	local ttl = tonumber(ARGV[2])

	local allowed = current < limit
	local remaining = limit - current - 1

	if allowed then
		redis.call('INCR', KEYS[1])
		if current == 0 then
			redis.call('EXPIRE', KEYS[1], ttl)
		end
	else
		remaining = -1
	end

	return {allowed and 1 or 0, remaining}
`

// Middleware 返回Gin中间件函数
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.cfg.RateLimit.Enabled {
			c.Next()
			return
		}

		rule := rl.cfg.GetRateLimitRuleForPath(c.Request.URL.Path)
		windowSecs := int64(rule.Window / time.Second)
		if windowSecs <= 0 {
			windowSecs = 60
		}

		now := time.Now().Unix()
		window := now / windowSecs
		key := fmt.Sprintf("fleet:ratelimit:%s:%s:%d", clientIP(c), rule.Path, window)

		result, err := rl.redis.Eval(c.Request.Context(), fixedWindowScript, []string{key},
			rule.Limit,
			windowSecs+1,
		).Result()
		if err != nil {
			// Redis错误时放行（降级策略）
			c.Next()
			return
		}

		values := result.([]interface{})
		allowed := values[0].(int64) == 1
		remaining := values[1].(int64)
		resetAt := (window + 1) * windowSecs

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": resetAt - now,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// clientIP 获取客户端IP，优先X-Forwarded-For
func clientIP(c *gin.Context) string {
	xff := c.GetHeader("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	return c.ClientIP()
}
