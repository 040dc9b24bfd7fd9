package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// UploadLimiter ограничивает частоту загрузки файлов. Разбор выгрузки
// занимает процессор, поэтому лимит общий на весь сервис.
type UploadLimiter struct {
	limiter *rate.Limiter
}

// NewUploadLimiter создает ограничитель: perSec запросов в секунду с запасом burst.
// perSec <= 0 отключает ограничение.
func NewUploadLimiter(perSec float64, burst int) *UploadLimiter {
	limit := rate.Inf
	if perSec > 0 {
		limit = rate.Limit(perSec)
	}
	if burst < 1 {
		burst = 1
	}
	return &UploadLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Allow сообщает, можно ли принять ещё один файл
func (l *UploadLimiter) Allow() bool {
	return l.limiter.Allow()
}

// Middleware отклоняет запрос с 429, если лимит исчерпан
func (l *UploadLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      true,
				"kind":       "rate_limited",
				"message":    "too many uploads, retry later",
				"request_id": GetRequestIDFromGin(c),
			})
			return
		}
		c.Next()
	}
}
