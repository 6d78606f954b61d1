package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/archfolio/backend/internal/config"
)

// UploadRateLimit limits the number of image uploads a client may perform
// within the configured window. Applied only to the upload routes.
func UploadRateLimit(redisClient *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		key := fmt.Sprintf("upload_limit:%s", clientIP)

		count, err := redisClient.Get(ctx, key).Int()
		if err == redis.Nil {
			// First upload in the window
			err = redisClient.Set(ctx, key, 1, cfg.UploadRateWindow).Err()
			if err != nil {
				// Redis error - don't block the upload
				c.Next()
				return
			}
		} else if err != nil {
			c.Next()
			return
		} else if count >= cfg.UploadMaxPerWindow {
			ttl, _ := redisClient.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":           "upload_rate_limit_exceeded",
				"message":         "Too many uploads. Please try again later.",
				"retry_after_min": int(ttl.Minutes()),
				"uploads":         count,
				"max_uploads":     cfg.UploadMaxPerWindow,
			})
			c.Abort()
			return
		} else {
			redisClient.Incr(ctx, key)
		}

		c.Next()
	}
}
