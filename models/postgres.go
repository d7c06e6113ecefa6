package models

import (
	"gorm.io/gorm"
)

// SnapshotRow はコーディネータ状態の定期スナップショットをJSONのまま保持する行です。
// 耐久性はベストエフォート。起動時に最新の1件だけ復元されます。
type SnapshotRow struct {
	gorm.Model
	Data string `gorm:"type:jsonb;not null"`
}

// Sighting は目撃写真のメタデータ行です。写真本体はUploadDir配下のファイルです。
type Sighting struct {
	gorm.Model
	SpotterID string `gorm:"not null;index"`
	TargetID  string `gorm:"not null;index"`
	PhotoPath string `gorm:"not null"`
	Points    int    `gorm:"not null"`
}
