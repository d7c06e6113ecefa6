package handlers

import (
	"net/http"

	"huntserver/hunt"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackerPing はファームウェアの定期ポーリングです。RSSIレポートの取り込みと
// ポーリング応答（PollResponse）の払い出しを行います。応答のフィールド順は
// ワイヤー契約なのでmodels.PollResponseの宣言順から変えないこと。
func TrackerPing(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.TrackerPingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "bad ping"})
		return
	}
	resp, err := coord.ReportTick(req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TrackerCapture は捕獲ボタンの処理です。拒否も理由付きの200で返します。
func TrackerCapture(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "bad request"})
		return
	}
	err := coord.AttemptCapture(req.PredID, req.PreyID, req.RSSI)
	if err != nil {
		logger.Debug("capture rejected",
			zap.String("pred", req.PredID), zap.String("prey", req.PreyID), zap.Error(err))
	}
	trackerResult(c, err)
}

// TrackerEmergency は緊急ボタン（長押し+3タップ）の発報です。
func TrackerEmergency(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.EmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "bad request"})
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = "emergency button"
	}
	trackerResult(c, coord.TriggerEmergency(req.DeviceID, reason))
}
