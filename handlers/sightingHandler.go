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
	"gorm.io/gorm"
)

// UploadSighting は目撃報告です。multipartでtarget_idと写真を受け取り、
// 写真の保存とメタデータの永続化はここで、目撃の事実の記録はコアで行います。
func UploadSighting(c *gin.Context, coord *hunt.Coordinator, db *gorm.DB, uploadDir string, logger *zap.Logger) {
	targetID := c.PostForm("target_id")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id required"})
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo required"})
		return
	}

	spotterID := middlewares.DeviceID(c)
	points, err := coord.RecordSighting(spotterID, targetID)
	if err != nil {
		writeReject(c, err)
		return
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("写真の保存に失敗しました", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}
	row := models.Sighting{
		SpotterID: spotterID,
		TargetID:  targetID,
		PhotoPath: filename,
		Points:    points,
	}
	if err := db.Create(&row).Error; err != nil {
		// 写真とコア側の記録は生きているので、メタデータ欠落はログに留める
		logger.Error("目撃データの保存に失敗しました", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "points": points})
}

// ListSightings は直近の目撃ギャラリーです（公開）。
func ListSightings(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	sightings := []models.Sighting{}
	if err := db.Order("created_at DESC").Limit(50).Find(&sightings).Error; err != nil {
		logger.Error("目撃データの取得に失敗しました", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sightings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sightings": sightings})
}
