package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agendamento/backend/pkg/redis"
	"agendamento/backend/pkg/response"
)

// RateLimit janela deslizante no Redis por IP e rota.
// Sem Redis, ou com erro no Redis, a requisição segue.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("limite:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "muitas tentativas, aguarde e tente novamente")
			c.Abort()
			return
		}

		c.Next()
	}
}
