package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/middlewares"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login は端末の初回接続です。未知のDeviceIDはここでプレイヤーとして生成され、
// 端末用JWTを払い出します。
func Login(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	player, err := coord.Login(req.DeviceID, req.Name)
	if err != nil {
		writeReject(c, err)
		return
	}
	token, err := middlewares.GenerateToken(player.DeviceID)
	if err != nil {
		logger.Error("トークン生成中にエラー発生", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "player": player})
}

// AdminLogin はパスワード照合の上で管理者JWTを払い出します。
func AdminLogin(c *gin.Context, adminPassword string, logger *zap.Logger) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
		return
	}
	if adminPassword == "" || req.Password != adminPassword {
		logger.Warn("管理者ログイン失敗")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad password"})
		return
	}
	token, err := middlewares.GenerateAdminToken()
	if err != nil {
		logger.Error("トークン生成中にエラー発生", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout はプレイヤーをオフライン扱いにします。
func Logout(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.Logout(middlewares.DeviceID(c)); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
