package middlewares

import (
	"net/http"
	"strings"

	"huntserver/auth"
	"huntserver/hunt"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bearerClaims はAuthorizationヘッダーのBearerトークンを検証してクレームを返します。
func bearerClaims(c *gin.Context) (*models.MyClaims, error) {
	tokenString := c.GetHeader("Authorization")
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return auth.ParseToken(tokenString)
}

// RequireLogin は端末JWTを検証し、DeviceIDをコンテキストに載せるミドルウェアです。
func RequireLogin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c)
		if err != nil || claims.DeviceID == "" {
			logger.Warn("認証失敗", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("deviceID", claims.DeviceID)
		c.Next()
	}
}

// RequireMod は端末JWTに加えモデレーター権限（または管理者JWT）を要求します。
func RequireMod(coord *hunt.Coordinator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c)
		if err != nil {
			logger.Warn("認証失敗", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if claims.IsAdmin {
			c.Set("isAdmin", true)
			c.Next()
			return
		}
		if claims.DeviceID == "" || !coord.IsModerator(claims.DeviceID) {
			logger.Warn("モデレーター権限なし", zap.String("deviceID", claims.DeviceID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderator only"})
			return
		}
		c.Set("deviceID", claims.DeviceID)
		c.Next()
	}
}

// RequireAdmin は管理者JWTを要求します。
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c)
		if err != nil || !claims.IsAdmin {
			logger.Warn("管理者権限なし", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}

// DeviceID はRequireLoginが載せたDeviceIDを取り出します。
func DeviceID(c *gin.Context) string {
	return c.GetString("deviceID")
}
