package middleware

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// RevocationChecker 查询 Token 是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, service.KindUnauthorized, "Not authorized, no token", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, service.KindUnauthorized, "Not authorized, token failed", nil)
			c.Abort()
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), signature)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "token blacklist lookup failed", "err", err)
			response.Fail(c, service.KindStorage, service.UnExpectedError.Error(), nil)
			c.Abort()
			return
		}
		if revoked {
			response.Fail(c, service.KindUnauthorized, "Not authorized, token failed", nil)
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, service.KindUnauthorized, "Not authorized, token failed", nil)
			c.Abort()
			return
		}

		c.Set(consts.ContextUserID, claims.UserID)
		c.Set(consts.ContextRole, claims.Role)
		c.Set(consts.ContextToken, tokenString)

		c.Next()
	}
}

// GetPrincipal 读取 AuthMiddleware 注入的身份
func GetPrincipal(c *gin.Context) *security.Principal {
	userID := c.GetUint64(consts.ContextUserID)
	if userID == 0 {
		return nil
	}
	return &security.Principal{
		ID:   userID,
		Role: c.GetString(consts.ContextRole),
	}
}
