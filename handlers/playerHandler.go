package handlers

import (
	"net/http"
	"path/filepath"

	"huntserver/hunt"
	"huntserver/middlewares"
	"huntserver/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListPlayers は全プレイヤーの一覧です。写真掲載NGのプレイヤーは
// 写真パスを伏せて返します。
func ListPlayers(c *gin.Context, coord *hunt.Coordinator) {
	players := coord.Players()
	for i := range players {
		if !players[i].ConsentPhoto {
			players[i].PhotoPath = ""
		}
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

// GetPlayer は本人のプレイヤー情報です。
func GetPlayer(c *gin.Context, coord *hunt.Coordinator) {
	player, err := coord.Get(middlewares.DeviceID(c))
	if err != nil {
		writeReject(c, err)
		return
	}
	points, _ := coord.Points(player.DeviceID)
	c.JSON(http.StatusOK, gin.H{"player": player, "points": points})
}

// UpdatePlayer は本人のプロフィール更新（名前・ロール・ステータス）です。
func UpdatePlayer(c *gin.Context, coord *hunt.Coordinator, logger *zap.Logger) {
	var req models.PlayerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	player, err := coord.UpdateProfile(middlewares.DeviceID(c), req)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

// UpdateConsent は同意フラグの更新です。
func UpdateConsent(c *gin.Context, coord *hunt.Coordinator) {
	var req models.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	player, err := coord.SetConsent(middlewares.DeviceID(c), req)
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": player})
}

// UploadProfilePhoto はプロフィール写真のアップロードです。
// ファイルはUploadDir配下にuuid名で保存し、パスだけコアに渡します。
func UploadProfilePhoto(c *gin.Context, coord *hunt.Coordinator, uploadDir string, logger *zap.Logger) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo required"})
		return
	}
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("写真の保存に失敗しました", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}
	if err := coord.SetProfilePhoto(middlewares.DeviceID(c), filename); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_path": filename})
}

// GetNotifications は未読通知を全件払い出してキューを空にします。
func GetNotifications(c *gin.Context, coord *hunt.Coordinator) {
	notifs, err := coord.DrainNotifications(middlewares.DeviceID(c))
	if err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifs})
}

// PostEscape は脱出申告です。
func PostEscape(c *gin.Context, coord *hunt.Coordinator) {
	var req models.EscapeRequest
	c.ShouldBindJSON(&req) // ボディ無しでも可
	if err := coord.Escape(middlewares.DeviceID(c), req.BeaconID); err != nil {
		writeReject(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
