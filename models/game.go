package models

import "time"

// ゲームフェーズ
const (
	PhaseLobby     = "lobby"
	PhaseCountdown = "countdown"
	PhaseRunning   = "running"
	PhasePaused    = "paused"
	PhaseEnded     = "ended"
)

// Settings はゲーム運用側で調整できるパラメータ群です。
type Settings struct {
	DurationMin            int  `json:"duration_min"`
	CountdownSec           int  `json:"countdown_sec"`
	CaptureRSSI            int  `json:"capture_rssi"`         // これ以上強い信号で捕獲成立
	SafeZoneRSSI           int  `json:"safezone_rssi"`        // ビーコン個別値が無い場合のしきい値
	ProximityAlertRSSI     int  `json:"proximity_alert_rssi"` // 接近警告のしきい値
	HonorSystem            bool `json:"honor_system"`         // セーフゾーン自己申告モード
	AllowRoleChangeInField bool `json:"allow_role_change_in_field"`
}

// Emergency は緊急停止の状態です。Active中は捕獲・目撃・再開・開始を受け付けません。
type Emergency struct {
	Active      bool      `json:"active"`
	TriggeredBy string    `json:"triggered_by,omitempty"` // システム起動の場合は"system"
	Reason      string    `json:"reason,omitempty"`
	TriggeredAt time.Time `json:"triggered_at,omitempty"`
	Responders  []string  `json:"responders,omitempty"` // 発報者に近い順のDeviceID
}

// GameState はプロセス内に1つだけ存在するゲーム全体の状態です。
type GameState struct {
	Phase    string    `json:"phase"`
	Mode     string    `json:"mode"`
	Settings Settings  `json:"settings"`
	Started  time.Time `json:"started,omitempty"`
	Ended    time.Time `json:"ended,omitempty"`

	// countdown/running中の終了予定時刻。paused中はRemainingに退避される
	Deadline  time.Time     `json:"deadline,omitempty"`
	Remaining time.Duration `json:"remaining,omitempty"` // ナノ秒。pause中のみ有意

	Emergency  Emergency       `json:"emergency"`
	TeamScores map[string]int  `json:"team_scores,omitempty"`
	Moderators map[string]bool `json:"moderators"`
}
