package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memearena/arena/internal/logger"
	"github.com/memearena/arena/internal/scheduler"
)

// CallbackConfig holds scheduled callback verification configuration
type CallbackConfig struct {
	Secret string
	// MaxSkew bounds how old a callback timestamp may be, limiting replays
	MaxSkew time.Duration
}

// VerifyCallback returns a gin middleware that authenticates scheduled callback
// deliveries by their HMAC signature and timestamp
func VerifyCallback(cfg CallbackConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(scheduler.HeaderSignature)
		callbackID := c.GetHeader(scheduler.HeaderID)
		timestampStr := c.GetHeader(scheduler.HeaderTimestamp)

		if signature == "" || callbackID == "" || timestampStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing callback signature headers",
				},
			})
			return
		}

		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Invalid callback timestamp",
				},
			})
			return
		}

		if cfg.MaxSkew > 0 {
			age := time.Since(time.Unix(timestamp, 0))
			if age > cfg.MaxSkew || age < -cfg.MaxSkew {
				logger.Warn("callback timestamp outside allowed skew",
					zap.String("callback_id", callbackID),
					zap.Duration("age", age))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{
						"code":    "unauthorized",
						"message": "Callback timestamp outside allowed window",
					},
				})
				return
			}
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "bad_request",
					"message": "Failed to read request body",
				},
			})
			return
		}
		// Restore the body for downstream handlers
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !scheduler.VerifyPayload(cfg.Secret, timestamp, callbackID, body, signature) {
			logger.Warn("callback signature verification failed",
				zap.String("callback_id", callbackID),
				zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Invalid callback signature",
				},
			})
			return
		}

		c.Next()
	}
}
