package database

import (
	"context"
	"encoding/json"
	"time"

	"huntserver/hunt"
	"huntserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaveSnapshot はスナップショットを1行のJSONとして書き込みます。
func SaveSnapshot(db *gorm.DB, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return db.Create(&models.SnapshotRow{Data: string(data)}).Error
}

// LoadLatestSnapshot は最新のスナップショットを読み戻します。
// 1件も無い場合は(nil, nil)です。
func LoadLatestSnapshot(db *gorm.DB) (*models.Snapshot, error) {
	var row models.SnapshotRow
	err := db.Order("created_at DESC").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(row.Data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SnapshotWriter は定期的にコーディネータの状態を永続化するベストエフォートの
// バックグラウンド処理です。状態のコピー取得だけがロック下で、JSON化と
// 書き込みはロック外で行われます。
func SnapshotWriter(ctx context.Context, db *gorm.DB, coord *hunt.Coordinator, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			snap := coord.Snapshot()
			if err := SaveSnapshot(db, snap); err != nil {
				logger.Error("スナップショットの保存に失敗しました", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
