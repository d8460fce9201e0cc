package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-http-service/internal/domain/services"
	"contacts-http-service/internal/error/code"
	"contacts-http-service/internal/error/response"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(svc services.InterfaceJWTService) {
	jwtService = svc
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authentication 通用的认证中间件，解析令牌并将声明存入上下文
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		// 提取并验证token
		tokenString := extractToken(authHeader)
		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token: "+err.Error(), nil)
			c.Abort()
			return
		}

		// 存储claims到上下文
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequirePermission 校验当前用户是否拥有指定权限
// 权限不足时返回403，不再继续处理请求
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("claims")
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, ok := value.(*services.JWTClaims)
		if !ok || !claims.HasPerm(perm) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin 校验当前用户是否是管理员
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
