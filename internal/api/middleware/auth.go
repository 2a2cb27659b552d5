package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/pkg/jwt"
	"singular-attend/backend/pkg/redis"
	"singular-attend/backend/pkg/response"
)

// JWTAuth 管理端 JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 并检查 Redis 黑名单（rdb 为 nil 时跳过黑名单检查，降级运行）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
			// Redis 出错时降级放行
		}

		// 将管理员信息注入上下文
		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}
