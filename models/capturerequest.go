package models

// CaptureRequest は捕獲試行のリクエストボディです。RSSIは捕獲者側で計測した値。
type CaptureRequest struct {
	PredID string `json:"pred_id" binding:"required"`
	PreyID string `json:"prey_id" binding:"required"`
	RSSI   int    `json:"rssi"`
}
