package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/middlewares"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostEmergency はログイン済みプレイヤーからの緊急発報です。
func PostEmergency(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.EmergencyRequest
	c.ShouldBindJSON(&req)
	reason := req.Reason
	if reason == "" {
		reason = "emergency"
	}
	if err := coord.TriggerEmergency(middlewares.DeviceID(c), reason); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emergency": coord.EmergencyStatus()})
}

// SystemEmergency は運営からの発報です（管理者操作）。
func SystemEmergency(c *gin.Context, coord *hunt.Coordinator) {
	var req models.EmergencyRequest
	c.ShouldBindJSON(&req)
	reason := req.Reason
	if reason == "" {
		reason = "operator emergency"
	}
	coord.TriggerSystemEmergency(reason)
	c.JSON(http.StatusOK, gin.H{"emergency": coord.EmergencyStatus()})
}

// ClearEmergency は緊急状態の解除です。フェーズの再開は別途Resumeで行います。
func ClearEmergency(c *gin.Context, coord *hunt.Coordinator) {
	if err := coord.ClearEmergency(); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetEmergency は現在の緊急状態です（公開）。
func GetEmergency(c *gin.Context, coord *hunt.Coordinator) {
	c.JSON(http.StatusOK, gin.H{"emergency": coord.EmergencyStatus()})
}
