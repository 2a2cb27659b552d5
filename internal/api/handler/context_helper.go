package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/pkg/response"
)

// MustGetAdminID 从 Gin 上下文中安全提取 admin_id。
// 如果 JWT 中间件未正确注入 admin_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetAdminID(c *gin.Context) (string, bool) {
	v, exists := c.Get("admin_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetTokenMeta 从上下文中提取当前 token 的 JTI 与过期时间（登出拉黑用）
func GetTokenMeta(c *gin.Context) (jti string, expiresAt time.Time, ok bool) {
	v, exists := c.Get("token_jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, ok = v.(string)
	if !ok || jti == "" {
		return "", time.Time{}, false
	}

	e, exists := c.Get("token_expires_at")
	if !exists {
		return "", time.Time{}, false
	}
	expiresAt, ok = e.(time.Time)
	return jti, expiresAt, ok
}
