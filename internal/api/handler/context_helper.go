package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/am-bush650/student-management-system/internal/permission"
	"github.com/am-bush650/student-management-system/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
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

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (permission.Role, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return permission.Role(s), true
}

// GetStudentID 从 Gin 上下文中提取 student_id（非学生角色为空字符串）。
func GetStudentID(c *gin.Context) string {
	v, exists := c.Get("student_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetTokenInfo 提取当前 Token 的 JTI 与过期时间（登出用）。
func GetTokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString("jti")
	expiresAt, _ := c.Get("token_expires_at")
	t, _ := expiresAt.(time.Time)
	return jti, t
}
