package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"forgekit/internal/pkg/jwt"
	"forgekit/pkg/constants"
	pkgErrors "forgekit/pkg/errors"
	"forgekit/pkg/responses"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "缺少Authorization Header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, pkgErrors.CodeUnauthorized, "Authorization格式错误")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 类型必须是 AccessToken
		claims, err := jwt.ValidateToken(secret, token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.JWTContextKey, claims.Subject)
		c.Next()
	}
}
