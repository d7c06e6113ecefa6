package models

import "time"

// プレイヤーのロール
const (
	RoleUnassigned = "unassigned"
	RolePred       = "pred"
	RolePrey       = "prey"
)

// プレイヤーのステータス
const (
	StatusOffline  = "offline"
	StatusLobby    = "lobby"
	StatusReady    = "ready"
	StatusActive   = "active"
	StatusCaptured = "captured"
	StatusDND      = "dnd" // 一時離脱（Do Not Disturb）
)

// Player はトラッカー端末1台に対応するプレイヤーの全状態です。
// DeviceID（英大文字+数字、4〜10文字）をキーとし、初回アクセス時に生成されます。
type Player struct {
	DeviceID string `json:"device_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Team     string `json:"team,omitempty"` // 未所属は空文字。ポーリング応答ではnullに正規化する
	Online   bool   `json:"online"`

	InSafeZone     bool   `json:"in_safe_zone"`
	SafeZoneBeacon string `json:"safe_zone_beacon,omitempty"`
	CapturedBy     string `json:"captured_by,omitempty"`

	// ゲーム中のカウンター。リセット時にゼロクリアされる
	Captures      int `json:"captures"`
	Escapes       int `json:"escapes"`
	TimesCaptured int `json:"times_captured"`
	Sightings     int `json:"sightings"`
	Infections    int `json:"infections"`
	BountyEarned  int `json:"bounty_earned"`

	// 同意フラグ。バッジ表記は hunt.ConsentBadge を参照
	ConsentPhysical bool `json:"consent_physical"` // 身体接触OK（デフォルトfalse）
	ConsentPhoto    bool `json:"consent_photo"`    // 写真掲載OK（デフォルトtrue）
	ConsentLocation bool `json:"consent_location"` // 位置共有OK（デフォルトtrue）

	PhotoPath   string          `json:"photo_path,omitempty"` // プロフィール写真の保存先
	HasPhotoOf  map[string]bool `json:"has_photo_of"`         // 目撃写真を撮った相手のDeviceID
	NearestHint string          `json:"nearest_hint"`         // 最寄りプレイヤーの表示用ヒント

	LastPeerRSSI map[string]int `json:"-"` // 直近のping内の対向機RSSI
	LastSeen     time.Time      `json:"last_seen"`

	Notifications []Notification `json:"-"` // 本人宛ての未読通知（上限あり・古い順に破棄）
}
