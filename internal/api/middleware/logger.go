package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger uma linha por requisição, nível conforme o status
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(inicio)),
			zap.String("request_id", c.GetString(ChaveRequestID)),
		}
		if usuario := c.GetString(ChaveLogin); usuario != "" {
			fields = append(fields, zap.String("login", usuario))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= 500:
			logger.Error("falha ao processar requisição", fields...)
		case status >= 400:
			logger.Warn("erro do cliente", fields...)
		default:
			logger.Info("requisição concluída", fields...)
		}
	}
}
