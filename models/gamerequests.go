package models

// StartRequest はゲーム開始のリクエストボディです。ゼロ値はモードの既定値を使います。
type StartRequest struct {
	DurationMin  int `json:"duration_min"`
	CountdownSec int `json:"countdown_sec"`
}

// ModeRequest はゲームモード変更のリクエストボディです。
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SettingsRequest は設定の部分更新です。nilのフィールドは変更しません。
type SettingsRequest struct {
	DurationMin            *int  `json:"duration_min"`
	CountdownSec           *int  `json:"countdown_sec"`
	CaptureRSSI            *int  `json:"capture_rssi"`
	SafeZoneRSSI           *int  `json:"safezone_rssi"`
	ProximityAlertRSSI     *int  `json:"proximity_alert_rssi"`
	HonorSystem            *bool `json:"honor_system"`
	AllowRoleChangeInField *bool `json:"allow_role_change_in_field"`
}
