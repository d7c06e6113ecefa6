package utils

import (
	"os"
	"path/filepath"
	"time"

	"huntserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CronCleaner はPostgreSQLとアップロードディレクトリの定期クリーンナップです。
// 5秒周期のゲーム整合処理はコーディネータ側（hunt.RunReconciler）が持ちます。
func CronCleaner(db *gorm.DB, uploadDir string, logger *zap.Logger) {
	c := cron.New()

	// 古いスナップショット行を削除するジョブ（毎日実行）
	c.AddFunc("@daily", func() {
		logger.Info("古いスナップショットを削除する処理を開始")
		result := db.Unscoped().
			Where("created_at <= ?", time.Now().Add(-24*time.Hour)).
			Delete(&models.SnapshotRow{})
		if result.Error != nil {
			logger.Error("スナップショットの削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("スナップショット削除完了", zap.Int("rows_deleted", int(result.RowsAffected)))
		}
	})

	// 古い目撃写真とメタデータを削除するジョブ（"分 時 日 月 曜日"）
	c.AddFunc("0 3 * * *", func() {
		logger.Info("古い目撃写真を削除する処理を開始")
		cutoff := time.Now().Add(-7 * 24 * time.Hour)
		sightings := []models.Sighting{}
		db.Where("created_at <= ?", cutoff).Find(&sightings)
		for _, s := range sightings {
			if s.PhotoPath == "" {
				continue
			}
			// 保存先の外のファイルを消さないようベース名だけ使う
			path := filepath.Join(uploadDir, filepath.Base(s.PhotoPath))
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Error("写真ファイルの削除に失敗しました", zap.String("path", path), zap.Error(err))
			}
		}
		result := db.Unscoped().Where("created_at <= ?", cutoff).Delete(&models.Sighting{})
		if result.Error != nil {
			logger.Error("目撃データの削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("目撃データ削除完了", zap.Int("rows_deleted", int(result.RowsAffected)))
		}
	})

	c.Start()
}
