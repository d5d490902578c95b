package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendamento/backend/pkg/response"
)

// Recovery converte panic em 500 no envelope padrão
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic na requisição",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(ChaveRequestID)),
			zap.Stack("stack"))
		response.InternalError(c)
		c.Abort()
	})
}
