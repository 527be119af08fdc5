package Route

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware 给每个请求分配 X-Request-ID，客户端带了就沿用
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// BasicAuthMiddleware HTTP Basic 认证中间件
// 未配置凭证时直接放行；凭证比较使用恒定时间，避免时序侧信道
func BasicAuthMiddleware(user, pass string) gin.HandlerFunc {
	if user == "" || pass == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		reqUser, reqPass, ok := c.Request.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(reqUser), []byte(user)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(reqPass), []byte(pass)) == 1
		if !ok || !userOK || !passOK {
			c.Header("WWW-Authenticate", `Basic realm="MintMemo"`)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "需要认证",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
