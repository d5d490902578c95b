package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChaveRequestID chave do contexto com o id da requisição
const ChaveRequestID = "request_id"

const requestIDMaxLen = 64

// RequestID reaproveita X-Request-ID (até 64 caracteres) ou gera um UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(ChaveRequestID, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
