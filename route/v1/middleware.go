package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/common_err"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/jwt"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT rejects requests without a valid bearer token signed with secret.
func JWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer"))
		if len(token) == 0 {
			token = c.Query("token")
		}

		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			logger.Info("capture token rejected", zap.String("remote", c.ClientIP()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.Result{Success: common_err.UNAUTHORIZED, Message: common_err.GetMsg(common_err.UNAUTHORIZED)})
			return
		}

		c.Set("client", claims.Client)
		c.Next()
	}
}

// LimitPayload caps the request body at n bytes; n <= 0 disables the cap.
func LimitPayload(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func WriteLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client", c.GetString("client")),
			zap.Duration("took", time.Since(start)))
	}
}
